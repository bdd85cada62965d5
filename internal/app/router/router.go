// Package router assembles the gin engine.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	employeehandler "employee_directory/internal/feature/employee/transport/handler"
	"employee_directory/internal/platform/http/handler"
	"employee_directory/internal/platform/http/middleware"
)

// Options carries the settings that shape the engine.
type Options struct {
	CORSOrigins  []string
	HealthChecks []handler.Check
}

// NewRouter wires middleware, the health endpoint and the employee API.
func NewRouter(employees *employeehandler.EmployeeHandler, logger *zap.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
		}))
	}

	// 導通確認用
	health := handler.Health(opts.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	api := r.Group("/api/employees")
	{
		api.GET("", employees.List)
		api.GET("/:id", employees.Get)
		api.POST("", employees.Create)
		api.PUT("/:id", employees.Update)
		api.DELETE("/:id", employees.Delete)
	}

	return r
}
