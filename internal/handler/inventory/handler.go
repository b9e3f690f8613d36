package inventory

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/service/inventory"
)

type Handler struct {
	svc inventory.InventoryServicer
}

func NewHandler(svc inventory.InventoryServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	inv := r.Group("/inventory")
	{
		inv.GET("/blood", list(h.svc.Blood))
		inv.GET("/organs", list(h.svc.Organs))
		inv.GET("/tissues", list(h.svc.Tissues))
	}
	r.GET("/campaigns", list(h.svc.Campaigns))
	r.GET("/forecast", list(h.svc.Forecast))
}

func list[T any](load func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := load(c.Request.Context())
		if err != nil {
			handler.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
	}
}
