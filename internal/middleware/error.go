package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/internal/handler"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

// ErrorHandler logs errors handlers attached with c.Error and answers for
// any handler that did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			status := apperrors.HTTPStatus(e.Err)
			event := log.Warn()
			if status >= 500 {
				event = log.Error()
			}
			event.
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Int("status", status).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		last := c.Errors.Last().Err
		c.JSON(apperrors.HTTPStatus(last), handler.NewErrorResponse(apperrors.Message(last)))
	}
}
