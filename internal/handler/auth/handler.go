package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/model"
)

type TokenIssuer interface {
	IssueToken(ctx context.Context, req *model.TokenRequest) (*model.TokenResponse, error)
}

type Handler struct {
	svc TokenIssuer
}

func NewHandler(svc TokenIssuer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/token", h.Token)
	}
}

// Token exchanges operator credentials for an access token.
func (h *Handler) Token(c *gin.Context) {
	var req model.TokenRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	tokens, err := h.svc.IssueToken(c.Request.Context(), &req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}
