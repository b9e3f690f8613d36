package request

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/service/intake"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

type Contacter interface {
	ContactDonor(ctx context.Context, requestID string, in *model.ContactDonorRequest, requestedBy string) (*model.ContactAlert, error)
}

type Handler struct {
	intake  intake.IntakeServicer
	contact Contacter
}

func NewHandler(intake intake.IntakeServicer, contact Contacter) *Handler {
	return &Handler{intake: intake, contact: contact}
}

// RegisterRoutes mounts the emergency request routes. limited runs in front
// of the match route, which calls the generative service.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, limited ...gin.HandlerFunc) {
	requests := r.Group("/requests")
	{
		requests.GET("", h.List)
		requests.POST("", h.Create)
		requests.GET("/:id", h.Get)
		requests.POST("/:id/matches", append(limited, h.FindMatches)...)
		requests.POST("/:id/contact", h.Contact)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filters model.RequestFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		handler.RespondWithError(c, apperrors.NewValidation("invalid query", err))
		return
	}

	reqs, err := h.intake.ListRequests(c.Request.Context(), &filters)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(reqs))
}

func (h *Handler) Get(c *gin.Context) {
	req, err := h.intake.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(req))
}

func (h *Handler) Create(c *gin.Context) {
	var in model.CreateEmergencyRequest
	if !handler.BindJSON(c, &in) {
		return
	}

	req, err := h.intake.CreateRequest(c.Request.Context(), &in)
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(req))
}

// FindMatches answers with the match result in both outcomes. On failure
// the result carries the user-facing error and the status reflects its kind.
func (h *Handler) FindMatches(c *gin.Context) {
	result, err := h.intake.FindMatches(c.Request.Context(), c.Param("id"))
	if err != nil {
		if result == nil {
			handler.RespondWithError(c, err)
			return
		}
		_ = c.Error(err)
		c.JSON(apperrors.HTTPStatus(err), &handler.Response{
			Status:  "error",
			Message: *result.Error,
			Data:    result,
		})
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) Contact(c *gin.Context) {
	var in model.ContactDonorRequest
	if !handler.BindJSON(c, &in) {
		return
	}

	alert, err := h.contact.ContactDonor(c.Request.Context(), c.Param("id"), &in, c.GetString(handler.ContextOperatorEmail))
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, handler.NewSuccessResponse(gin.H{
		"alertId":   alert.ID,
		"requestId": alert.RequestID,
		"donorId":   alert.DonorID,
	}))
}
