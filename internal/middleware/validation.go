package middleware

import (
	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"

	"github.com/donorconnect/donor-api/pkg/validator"
)

// RegisterValidation makes gin's binding engine report JSON field names, so
// bind errors read like the ones from pkg/validator. Call once at startup.
func RegisterValidation() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		validator.UseJSONNames(v)
	}
}
