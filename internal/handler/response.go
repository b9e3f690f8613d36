package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"

	apperrors "github.com/donorconnect/donor-api/pkg/errors"
	"github.com/donorconnect/donor-api/pkg/validator"
)

// Context keys set by the auth middleware.
const (
	ContextOperatorEmail = "operator_email"
	ContextOperatorRole  = "operator_role"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondWithError writes err using its AppError kind and attaches it to the
// context for the error middleware to log.
func RespondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	resp := NewErrorResponse(apperrors.Message(err))
	if fields := validator.FieldErrors(err); len(fields) > 0 {
		resp.Errors = fields
	}
	c.JSON(apperrors.HTTPStatus(err), resp)
}

// BindJSON decodes the body into obj and answers 400 on failure. It returns
// false when the handler should stop.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondWithError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	if errors.Is(err, io.EOF) {
		return apperrors.NewValidation("request body is required", err)
	}

	var verrs govalidator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(validator.Errors, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, validator.FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: validator.Describe(fe),
			})
		}
		return apperrors.NewValidation("invalid request: "+fields.Error(), fields)
	}

	return apperrors.NewValidation("invalid request body", err)
}
