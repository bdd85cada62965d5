// Package usecase implements the business logic for the employee feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee_directory/internal/feature/employee/domain"
	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/feature/employee/validation"
)

// EmployeeRepository abstracts the persistence layer for employees.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type EmployeeRepository interface {
	// List returns all employees ordered by created_at descending.
	List(ctx context.Context) ([]entity.Employee, error)

	// FindByID returns domain.ErrEmployeeNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.Employee, error)

	// FindByEmail returns domain.ErrEmployeeNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.Employee, error)

	// Create inserts e and fills in its ID.
	// It returns domain.ErrDuplicateEmail if the store rejects the email as a duplicate.
	Create(ctx context.Context, e *entity.Employee) error

	// Update persists name, email, position and updated_at of e.
	Update(ctx context.Context, e *entity.Employee) error

	// Delete removes the row and returns the number of rows removed.
	Delete(ctx context.Context, id uint) (int64, error)
}

// FieldValidator checks candidate fields before any store access.
type FieldValidator interface {
	Validate(f entity.Fields) validation.Result
}

// Option configures an EmployeeUsecase.
type Option func(*EmployeeUsecase)

// WithClock overrides the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(u *EmployeeUsecase) {
		u.now = now
	}
}

// EmployeeUsecase orchestrates validation, email uniqueness and store calls.
type EmployeeUsecase struct {
	repo      EmployeeRepository
	validator FieldValidator
	now       func() time.Time
}

// NewEmployeeUsecase creates an EmployeeUsecase backed by repo.
func NewEmployeeUsecase(repo EmployeeRepository, v FieldValidator, opts ...Option) *EmployeeUsecase {
	u := &EmployeeUsecase{
		repo:      repo,
		validator: v,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// List returns every employee, newest first.
func (u *EmployeeUsecase) List(ctx context.Context) ([]entity.Employee, error) {
	employees, err := u.repo.List(ctx)
	if err != nil {
		return nil, storeFailure("list employees", err)
	}
	return employees, nil
}

// GetByID returns the employee or domain.ErrEmployeeNotFound.
func (u *EmployeeUsecase) GetByID(ctx context.Context, id uint) (*entity.Employee, error) {
	e, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, passNotFound("get employee", err)
	}
	return e, nil
}

// getByEmail is only used for uniqueness checks.
func (u *EmployeeUsecase) getByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	e, err := u.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, passNotFound("check email", err)
	}
	return e, nil
}

// Create validates f, rejects a duplicate email and inserts a new employee.
func (u *EmployeeUsecase) Create(ctx context.Context, f entity.Fields) (*entity.Employee, error) {
	if err := u.validator.Validate(f).Err(); err != nil {
		return nil, err
	}

	if err := u.ensureEmailFree(ctx, f.Email); err != nil {
		return nil, err
	}

	now := u.now()
	e := &entity.Employee{
		Name:      strings.TrimSpace(f.Name),
		Email:     f.Email,
		Position:  strings.TrimSpace(f.Position),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Create(ctx, e); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, storeFailure("create employee", err)
	}
	return e, nil
}

// Update validates f and overwrites name, email and position of employee id.
// The uniqueness check only runs when the email changes.
func (u *EmployeeUsecase) Update(ctx context.Context, id uint, f entity.Fields) (*entity.Employee, error) {
	if err := u.validator.Validate(f).Err(); err != nil {
		return nil, err
	}

	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if f.Email != existing.Email {
		if err := u.ensureEmailFree(ctx, f.Email); err != nil {
			return nil, err
		}
	}

	now := u.now()
	if now.Before(existing.CreatedAt) {
		now = existing.CreatedAt
	}
	existing.Name = strings.TrimSpace(f.Name)
	existing.Email = f.Email
	existing.Position = strings.TrimSpace(f.Position)
	existing.UpdatedAt = now

	if err := u.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, storeFailure("update employee", err)
	}
	return existing, nil
}

// Delete hard-deletes employee id and returns the number of rows removed.
func (u *EmployeeUsecase) Delete(ctx context.Context, id uint) (int64, error) {
	if _, err := u.GetByID(ctx, id); err != nil {
		return 0, err
	}

	n, err := u.repo.Delete(ctx, id)
	if err != nil {
		return 0, storeFailure("delete employee", err)
	}
	if n == 0 {
		// removed concurrently after the lookup
		return 0, domain.ErrEmployeeNotFound
	}
	return n, nil
}

func (u *EmployeeUsecase) ensureEmailFree(ctx context.Context, email string) error {
	_, err := u.getByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrDuplicateEmail
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return nil
	default:
		return err
	}
}

func passNotFound(op string, err error) error {
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		return err
	}
	return storeFailure(op, err)
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, op, err)
}
