package assistant

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/model"
)

type Replier interface {
	Reply(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, req *model.FeedbackSummaryRequest) (*model.FeedbackSummaryResponse, error)
}

type Handler struct {
	chat       Replier
	summarizer Summarizer
}

func NewHandler(chat Replier, summarizer Summarizer) *Handler {
	return &Handler{chat: chat, summarizer: summarizer}
}

// RegisterPublicRoutes mounts the donor chatbot.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, limited ...gin.HandlerFunc) {
	r.POST("/chat", append(limited, h.Chat)...)
}

// RegisterAdminRoutes mounts the feedback summarizer.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup, limited ...gin.HandlerFunc) {
	r.POST("/feedback/summary", append(limited, h.SummarizeFeedback)...)
}

func (h *Handler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.chat.Reply(c.Request.Context(), &req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) SummarizeFeedback(c *gin.Context) {
	var req model.FeedbackSummaryRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	resp, err := h.summarizer.Summarize(c.Request.Context(), &req)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}
