package router

import (
	"time"

	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/handler"
	"github.com/campusly/college-management/internal/middleware"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Student    *handler.StudentHandler
	Teacher    *handler.TeacherHandler
	Department *handler.DepartmentHandler
	Health     *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	loginLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) { response.NotFound(c) })

	// Health check.
	router.GET("/health", handlers.Health.Check)

	cm := router.Group("/cm")
	cm.Use(middleware.NoStore())

	// ─── 1. Auth (Public, Rate Limited) ────────────────────────────────
	cm.POST("/auth/login", loginLimiter.Middleware(), handlers.Auth.Login)

	// ─── 2. Reads (USER or ADMIN) ──────────────────────────────────────
	read := cm.Group("")
	read.Use(
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)
	{
		read.GET("/get/s/get-all", handlers.Student.GetAll)
		read.GET("/get/s/page", handlers.Student.GetPage)
		read.GET("/get/s/age/:age", handlers.Student.GetByAge)
		read.GET("/get/s/:studentId", handlers.Student.GetByID)

		read.GET("/get/t/get-all", handlers.Teacher.GetAll)
		read.GET("/get/t/page", handlers.Teacher.GetPage)
		read.GET("/get/t/:teacherId", handlers.Teacher.GetByID)
		read.GET("/get/age", handlers.Teacher.GetByAge)

		read.GET("/get/d/get-all", handlers.Department.GetAll)
		read.GET("/get/d/sort/:departmentName", handlers.Department.SortByName)
		read.GET("/d/page", handlers.Department.GetPage)
		read.GET("/d/:departmentId", handlers.Department.GetByID)
		read.GET("/d/:departmentId/students", handlers.Department.GetStudents)
		read.GET("/d/:departmentId/teachers", handlers.Department.GetTeachers)
	}

	// ─── 3. Writes (ADMIN) ─────────────────────────────────────────────
	write := cm.Group("")
	write.Use(
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleAdmin),
	)
	{
		write.POST("/s/create", handlers.Student.Create)
		write.PUT("/s/update/:studentId", handlers.Student.Update)
		write.DELETE("/s/delete/:studentId", handlers.Student.Delete)

		write.POST("/t/create", handlers.Teacher.Create)
		write.PUT("/t/update/:teacherId", handlers.Teacher.Update)
		write.DELETE("/t/delete/:teacherId", handlers.Teacher.Delete)

		write.POST("/d/create", handlers.Department.Create)
		write.PUT("/d/update/:departmentId", handlers.Department.Update)
		write.DELETE("/d/delete/:departmentId", handlers.Department.Delete)
	}

	return router
}
