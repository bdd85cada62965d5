// Package dto defines data transfer objects for the employee HTTP API.
package dto

import (
	"time"

	"employee_directory/internal/feature/employee/domain"
	"employee_directory/internal/feature/employee/domain/entity"
)

// EmployeeRequest is the body of POST and PUT /api/employees.
// Field rules are enforced by the usecase, not by binding tags.
type EmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// Fields converts the request into domain input.
func (r EmployeeRequest) Fields() entity.Fields {
	return entity.Fields{Name: r.Name, Email: r.Email, Position: r.Position}
}

// Employee is the public representation of one record.
type Employee struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromEntity maps a domain employee to its response shape.
func FromEntity(e *entity.Employee) Employee {
	return Employee{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Position:  e.Position,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ListResponse is the envelope for GET /api/employees.
type ListResponse struct {
	Success bool       `json:"success"`
	Data    []Employee `json:"data"`
	Count   int        `json:"count"`
}

// DataResponse is the success envelope for single-record operations.
type DataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// DeleteResult is the data payload of DELETE /api/employees/:id.
type DeleteResult struct {
	DeletedRows int64 `json:"deletedRows"`
}

// FieldError is one entry of the errors array returned on validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// ErrorResponse is the failure envelope shared by all endpoints.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FromViolations maps validation violations to their response shape.
func FromViolations(vs []domain.Violation) []FieldError {
	out := make([]FieldError, 0, len(vs))
	for _, v := range vs {
		out = append(out, FieldError{Field: v.Field, Message: v.Message, Value: v.Value})
	}
	return out
}
