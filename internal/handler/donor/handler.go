package donor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/service/donor"
)

type DriveLister interface {
	Drives(ctx context.Context) ([]*model.BloodDrive, error)
}

// Handler serves the donor-facing read routes.
type Handler struct {
	donors donor.DonorServicer
	drives DriveLister
}

func NewHandler(donors donor.DonorServicer, drives DriveLister) *Handler {
	return &Handler{donors: donors, drives: drives}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	donors := r.Group("/donors")
	{
		donors.GET("/:id", h.Get)
		donors.GET("/:id/history", h.History)
		donors.GET("/:id/insights", h.Insights)
	}
	r.GET("/drives", h.Drives)
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.donors.GetDonor(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}

func (h *Handler) History(c *gin.Context) {
	entries, err := h.donors.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) Insights(c *gin.Context) {
	insights, err := h.donors.Insights(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(insights))
}

func (h *Handler) Drives(c *gin.Context) {
	drives, err := h.drives.Drives(c.Request.Context())
	if err != nil {
		handler.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(drives))
}
