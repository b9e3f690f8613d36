package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs against their `validate` tags
type Validator interface {
	Validate(obj interface{}) error
	ValidateField(field string, value interface{}, rules string) error
}

// FieldError is one failed rule, named by the JSON field
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type validate struct {
	v *validator.Validate
}

func New() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	UseJSONNames(v)
	return &validate{v: v}
}

// UseJSONNames makes error field names follow json tags. It is also applied
// to gin's binding engine so request and response errors read the same.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

func (s *validate) Validate(obj interface{}) error {
	if err := s.v.Struct(obj); err != nil {
		return describe(err)
	}
	return nil
}

func (s *validate) ValidateField(field string, value interface{}, rules string) error {
	if err := s.v.Var(value, rules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s %s", field, message(verrs[0]))
		}
		return err
	}
	return nil
}

// Errors is the error returned by Validate; it lists every failed field.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + " " + fe.Message
	}
	return strings.Join(parts, "; ")
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   namespace(fe),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// namespace drops the root struct name: "DonorMatch.matchScore" -> "matchScore".
func namespace(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Describe renders a single rule failure as a short phrase.
func Describe(fe validator.FieldError) string {
	return message(fe)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "email":
		return "must be a valid email"
	case "dive":
		return "is invalid"
	}
	return "failed " + fe.Tag() + " validation"
}

// FieldErrors extracts the per-field details from a Validate error.
func FieldErrors(err error) []FieldError {
	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}
