// Package validation checks candidate employee fields before they reach the store.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"employee_directory/internal/feature/employee/domain"
	"employee_directory/internal/feature/employee/domain/entity"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// candidate mirrors entity.Fields with validation tags.
// Field order here is the order violations are reported in.
type candidate struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"employee_email"`
	Position string `json:"position" validate:"notblank"`
}

var messages = map[string]string{
	"name":     "Name is required",
	"email":    "Please provide a valid email",
	"position": "Position is required",
}

// Result is the outcome of validating one candidate record.
// An empty Violations slice means the record is valid.
type Result struct {
	Violations []domain.Violation
}

// Valid reports whether no violations were found.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns a *domain.ValidationError when the result is invalid, nil otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &domain.ValidationError{Violations: r.Violations}
}

// Validator validates employee fields. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the employee rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("json")
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", isNotBlank)
	_ = v.RegisterValidation("employee_email", isGoodEmailFormat)
	return &Validator{v: v}
}

// Validate checks name, email and position and returns every violation found.
func (val *Validator) Validate(f entity.Fields) Result {
	err := val.v.Struct(candidate{Name: f.Name, Email: f.Email, Position: f.Position})
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Violations: []domain.Violation{{Field: "", Message: err.Error()}}}
	}

	out := make([]domain.Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.Violation{
			Field:   fe.Field(),
			Message: messages[fe.Field()],
			Value:   fmt.Sprint(fe.Value()),
		})
	}
	return Result{Violations: out}
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
