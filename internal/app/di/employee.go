// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"employee_directory/internal/feature/employee/adapters"
	employeeclient "employee_directory/internal/feature/employee/client"
	"employee_directory/internal/feature/employee/usecase"
	"employee_directory/internal/platform/cache"
	"employee_directory/internal/platform/config"
	infrahttp "employee_directory/internal/platform/http"
)

// NewEmployeeRepository creates an EmployeeRepository backed by db.
// If Redis is available, reads are served through a cache with the given ttl.
func NewEmployeeRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.EmployeeRepository {
	repo := adapters.NewEmployeeRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingEmployeeRepository(rdb, ttl, repo, "employees")
}

// NewEmployeeClient creates an API client configured from cfg.
func NewEmployeeClient(cfg config.ClientConfig) *employeeclient.Client {
	return employeeclient.New(cfg.BaseURL, infrahttp.NewHTTPClient(cfg.Timeout))
}
