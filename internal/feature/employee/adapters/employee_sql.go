// Package adapters provides the repository implementations for the employee feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"employee_directory/internal/feature/employee/domain"
	"employee_directory/internal/feature/employee/domain/entity"
	"employee_directory/internal/feature/employee/usecase"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// employeeSQL implements usecase.EmployeeRepository with GORM.
// It works against both the SQLite and the PostgreSQL dialector.
type employeeSQL struct {
	db *gorm.DB
}

var _ usecase.EmployeeRepository = (*employeeSQL)(nil)

// NewEmployeeRepository creates an employeeSQL on top of an already opened connection.
func NewEmployeeRepository(db *gorm.DB) *employeeSQL {
	return &employeeSQL{db: db}
}

// List returns all employees, newest first. Ties on created_at fall back to id.
func (r *employeeSQL) List(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByID returns domain.ErrEmployeeNotFound when the id does not exist.
func (r *employeeSQL) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	var e entity.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByEmail matches the email exactly (case-sensitive).
func (r *employeeSQL) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	var e entity.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts e. A unique index violation on email becomes domain.ErrDuplicateEmail.
func (r *employeeSQL) Create(ctx context.Context, e *entity.Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update writes the mutable columns of e. id and created_at are never touched.
func (r *employeeSQL) Update(ctx context.Context, e *entity.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":       e.Name,
			"email":      e.Email,
			"position":   e.Position,
			"updated_at": e.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrDuplicateEmail
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete hard-deletes the row and reports how many rows were removed.
func (r *employeeSQL) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Employee{}, id)
	return result.RowsAffected, result.Error
}

// isUniqueViolation recognises unique constraint errors from either driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
