// Package handler provides the HTTP handlers for the employee feature.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"employee_directory/internal/feature/employee/domain"
	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/feature/employee/transport/http/dto"
)

// Response messages. Clients display them verbatim.
const (
	MsgNotFound       = "Employee not found"
	MsgDuplicateEmail = "Employee with this email already exists"
	MsgValidation     = "Validation failed"
	MsgInvalidID      = "Invalid employee id"
	MsgInvalidBody    = "Invalid request body"
	MsgCreated        = "Employee created successfully"
	MsgUpdated        = "Employee updated successfully"
	MsgDeleted        = "Employee deleted successfully"
)

// EmployeeUsecase defines the employee operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type EmployeeUsecase interface {
	List(ctx context.Context) ([]entity.Employee, error)
	GetByID(ctx context.Context, id uint) (*entity.Employee, error)
	Create(ctx context.Context, f entity.Fields) (*entity.Employee, error)
	Update(ctx context.Context, id uint, f entity.Fields) (*entity.Employee, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// EmployeeHandler adapts the five REST operations onto EmployeeUsecase.
// It holds no business logic: parse, call, map outcome to envelope.
type EmployeeHandler struct {
	uc     EmployeeUsecase
	logger *zap.Logger
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(uc EmployeeUsecase, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{uc: uc, logger: logger}
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error fetching employees")
		return
	}
	out := make([]dto.Employee, 0, len(employees))
	for i := range employees {
		out = append(out, dto.FromEntity(&employees[i]))
	}
	c.JSON(http.StatusOK, dto.ListResponse{Success: true, Data: out, Count: len(out)})
}

// Get handles GET /api/employees/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	e, err := h.uc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Error fetching employee")
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Success: true, Data: dto.FromEntity(e)})
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	req, ok := h.bindBody(c, "create employee")
	if !ok {
		return
	}
	e, err := h.uc.Create(c.Request.Context(), req.Fields())
	if err != nil {
		h.respondError(c, err, "Error creating employee")
		return
	}
	h.logger.Info("employee created", zap.Uint("id", e.ID))
	c.JSON(http.StatusCreated, dto.DataResponse{Success: true, Message: MsgCreated, Data: dto.FromEntity(e)})
}

// Update handles PUT /api/employees/:id.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	req, ok := h.bindBody(c, "update employee")
	if !ok {
		return
	}
	e, err := h.uc.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		h.respondError(c, err, "Error updating employee")
		return
	}
	h.logger.Info("employee updated", zap.Uint("id", e.ID))
	c.JSON(http.StatusOK, dto.DataResponse{Success: true, Message: MsgUpdated, Data: dto.FromEntity(e)})
}

// Delete handles DELETE /api/employees/:id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	n, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Error deleting employee")
		return
	}
	h.logger.Info("employee deleted", zap.Uint("id", id), zap.Int64("rows", n))
	c.JSON(http.StatusOK, dto.DataResponse{Success: true, Message: MsgDeleted, Data: dto.DeleteResult{DeletedRows: n}})
}

// bindBody decodes the JSON body. An empty body decodes as an empty request so
// that it is reported field by field by validation. It writes a 400 and
// returns false on malformed JSON.
func (h *EmployeeHandler) bindBody(c *gin.Context, op string) (dto.EmployeeRequest, bool) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn(op+": bad body", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: MsgInvalidBody})
		return dto.EmployeeRequest{}, false
	}
	return req, true
}

// bindID parses the :id path parameter. It writes a 400 and returns false on failure.
func (h *EmployeeHandler) bindID(c *gin.Context) (uint, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: MsgInvalidID})
		return 0, false
	}
	return uint(id), true
}

// respondError maps a usecase outcome to status code and envelope.
// failMsg is only used for unexpected store failures, whose details are logged, not returned.
func (h *EmployeeHandler) respondError(c *gin.Context, err error, failMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: MsgValidation, Errors: dto.FromViolations(verr.Violations)})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: MsgDuplicateEmail})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: MsgNotFound})
	default:
		_ = c.Error(err)
		h.logger.Error(failMsg, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: failMsg})
	}
}
