package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"employee_directory/internal/feature/employee/adapters"
	employeehandler "employee_directory/internal/feature/employee/transport/handler"
	"employee_directory/internal/feature/employee/usecase"
	"employee_directory/internal/feature/employee/validation"
	"employee_directory/internal/platform/db"
	"employee_directory/internal/platform/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type employeeBody struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field string `json:"field"`
	} `json:"errors"`
}

// setupRouter builds the full stack on an in-memory database with a clock
// that advances one second per call.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = sqlDB.Close() })

	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	uc := usecase.NewEmployeeUsecase(adapters.NewEmployeeRepository(gdb), validation.New(), usecase.WithClock(clock))
	h := employeehandler.NewEmployeeHandler(uc, zap.NewNop())
	return NewRouter(h, zap.NewNop(), Options{CORSOrigins: []string{"http://localhost:3000"}})
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, response) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func decodeEmployee(t *testing.T, raw json.RawMessage) employeeBody {
	t.Helper()
	var e employeeBody
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestEmployeeLifecycle(t *testing.T) {
	t.Parallel()

	r := setupRouter(t)

	code, resp := call(t, r, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Count)
	assert.JSONEq(t, `[]`, string(resp.Data))

	code, resp = call(t, r, http.MethodPost, "/api/employees", `{"name":"Test","email":"t@e.com","position":"QA"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Employee created successfully", resp.Message)
	created := decodeEmployee(t, resp.Data)
	assert.NotZero(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	code, resp = call(t, r, http.MethodGet, "/api/employees/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, code)
	got := decodeEmployee(t, resp.Data)
	assert.Equal(t, "Test", got.Name)
	assert.Equal(t, "t@e.com", got.Email)
	assert.Equal(t, "QA", got.Position)

	code, resp = call(t, r, http.MethodPut, "/api/employees/"+itoa(created.ID), `{"name":"Test","email":"t2@e.com","position":"QA"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Employee updated successfully", resp.Message)
	updated := decodeEmployee(t, resp.Data)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "t2@e.com", updated.Email)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	code, resp = call(t, r, http.MethodDelete, "/api/employees/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"deletedRows":1}`, string(resp.Data))

	code, resp = call(t, r, http.MethodGet, "/api/employees/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Employee not found", resp.Message)

	code, _ = call(t, r, http.MethodDelete, "/api/employees/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEmployeeUniquenessAndValidation(t *testing.T) {
	t.Parallel()

	r := setupRouter(t)

	code, resp := call(t, r, http.MethodPost, "/api/employees", `{"name":"Ann","email":"ann@example.com","position":"Engineer"}`)
	require.Equal(t, http.StatusCreated, code)
	ann := decodeEmployee(t, resp.Data)

	code, resp = call(t, r, http.MethodPost, "/api/employees", `{"name":"Bob","email":"bob@example.com","position":"Buyer"}`)
	require.Equal(t, http.StatusCreated, code)
	bob := decodeEmployee(t, resp.Data)

	code, resp = call(t, r, http.MethodPost, "/api/employees", `{"name":"Other","email":"ann@example.com","position":"QA"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Employee with this email already exists", resp.Message)

	code, resp = call(t, r, http.MethodPut, "/api/employees/"+itoa(bob.ID), `{"name":"Bob","email":"ann@example.com","position":"Buyer"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Employee with this email already exists", resp.Message)

	code, _ = call(t, r, http.MethodPut, "/api/employees/"+itoa(ann.ID), `{"name":"Ann B","email":"ann@example.com","position":"Engineer"}`)
	assert.Equal(t, http.StatusOK, code, "keeping one's own email is not a duplicate")

	code, resp = call(t, r, http.MethodPost, "/api/employees", `{"name":"","email":"invalid-email","position":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", resp.Message)
	require.Len(t, resp.Errors, 3)
	assert.Equal(t, "name", resp.Errors[0].Field)
	assert.Equal(t, "email", resp.Errors[1].Field)
	assert.Equal(t, "position", resp.Errors[2].Field)

	code, resp = call(t, r, http.MethodPost, "/api/employees", "")
	assert.Equal(t, http.StatusBadRequest, code, "an empty body is validated like {}")
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Len(t, resp.Errors, 3)

	code, resp = call(t, r, http.MethodPut, "/api/employees/"+itoa(ann.ID), "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, resp.Errors, 3)

	code, resp = call(t, r, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, resp.Count)
	var list []employeeBody
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, bob.ID, list[0].ID, "newest first")
	assert.Equal(t, ann.ID, list[1].ID)
}

func TestRouter_Platform(t *testing.T) {
	t.Parallel()

	r := setupRouter(t)

	code, _ := call(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)

	req := httptest.NewRequest(http.MethodOptions, "/api/employees", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employees", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_HealthCheckFailure(t *testing.T) {
	t.Parallel()

	down := func(ctx context.Context) error { return errors.New("db down") }
	r := NewRouter(employeehandler.NewEmployeeHandler(nil, nil), zap.NewNop(), Options{HealthChecks: []handler.Check{down}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
