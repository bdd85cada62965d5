// Package client is the client data layer of the employee directory: an API
// client plus the in-memory view (filter, sort, column visibility, export)
// that presentation code renders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"employee_directory/internal/feature/employee/transport/http/dto"
)

// APIError is a failed API call. Message is the server's message when the
// response carried one, otherwise a generic text for the operation.
type APIError struct {
	Status  int
	Message string
	Fields  []dto.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return e.Message + ": " + strings.Join(msgs, "; ")
}

// envelope is the union of the server's response shapes.
type envelope[T any] struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    T                `json:"data"`
	Count   int              `json:"count"`
	Errors  []dto.FieldError `json:"errors"`
}

// Client calls the employee REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL, e.g. "http://localhost:5000/api".
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// List fetches every employee.
func (c *Client) List(ctx context.Context) ([]dto.Employee, error) {
	var env envelope[[]dto.Employee]
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &env, "Failed to fetch employees"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get fetches one employee.
func (c *Client) Get(ctx context.Context, id uint) (*dto.Employee, error) {
	var env envelope[dto.Employee]
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, &env, "Failed to fetch employee"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create adds an employee and returns the stored record.
func (c *Client) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.Employee, error) {
	var env envelope[dto.Employee]
	if err := c.do(ctx, http.MethodPost, "/employees", in, &env, "Failed to save employee"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update replaces name, email and position of employee id.
func (c *Client) Update(ctx context.Context, id uint, in dto.EmployeeRequest) (*dto.Employee, error) {
	var env envelope[dto.Employee]
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), in, &env, "Failed to save employee"); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete removes employee id and returns the number of rows removed.
func (c *Client) Delete(ctx context.Context, id uint) (int64, error) {
	var env envelope[dto.DeleteResult]
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, &env, "Failed to delete employee"); err != nil {
		return 0, err
	}
	return env.Data.DeletedRows, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, failMsg string) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: failMsg + ": " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: failMsg}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: failMsg}
	var failure dto.ErrorResponse
	if json.Unmarshal(raw, &failure) == nil && failure.Message != "" {
		apiErr.Message = failure.Message
		apiErr.Fields = failure.Errors
	}
	return apiErr
}
