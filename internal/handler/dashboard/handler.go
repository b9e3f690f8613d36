package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/model"
)

type OverviewProvider interface {
	Overview(ctx context.Context) (*model.Overview, error)
}

type Handler struct {
	svc OverviewProvider
}

func NewHandler(svc OverviewProvider) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/overview", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(overview))
}
