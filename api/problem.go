package api

import (
	"errors"
	"fmt"
	"net/http"

	"commander/model"

	"github.com/go-playground/validator/v10"
)

const (
	problemType  = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	problemTitle = "One or more validation errors occurred."
)

// problems accumulates field-level violations for one request.
type problems map[string][]string

func (p problems) add(field, msg string) {
	p[field] = append(p[field], msg)
}

// validateDto runs the declared constraints of v and records each violation
// under the Go field name.
func validateDto(v any, p problems) error {
	err := model.Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		p.add(fe.Field(), violationMessage(fe))
	}
	return nil
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The field %s is invalid (%s).", fe.Field(), fe.Tag())
	}
}

func writeProblem(w http.ResponseWriter, p problems) {
	w.Header().Set("Content-Type", "application/problem+json; charset=utf-8")
	writeJSON(w, http.StatusBadRequest, ValidationProblem{
		Type:   problemType,
		Title:  problemTitle,
		Status: http.StatusBadRequest,
		Errors: p,
	})
}
