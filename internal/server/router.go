package server

import (
	"net/http"

	"teamtrack/internal/auth"
	"teamtrack/internal/config"
	"teamtrack/internal/handlers"
	"teamtrack/internal/mailer"
	"teamtrack/internal/middleware"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, tokens *auth.TokenService, mail *mailer.Mailer) *gin.Engine {
	r := gin.Default()

	h := handlers.New(cfg, tokens, mail)

	// AUTH
	r.POST("/api/login", h.Login)
	r.POST("/api/register", h.Register)
	r.POST("/api/send-verification-code", h.SendVerificationCode)
	r.POST("/api/check-email-registered", h.CheckEmailRegistered)
	r.POST("/api/recover-account", h.RecoverAccount)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokens))

	// ТЕКУЩИЙ ПОЛЬЗОВАТЕЛЬ
	api.GET("/user-role", h.GetUserRole)
	api.GET("/current-user-name", h.GetCurrentUserName)

	// ПОЛЬЗОВАТЕЛИ (управление — только админ)
	api.GET("/users/members", h.ListMembers)
	api.GET("/users/:id", h.GetUser)
	api.GET("/users", middleware.RequireRole(models.RoleAdmin), h.ListUsers)
	api.POST("/users", middleware.RequireRole(models.RoleAdmin), h.CreateUser)
	api.PUT("/users/:id/info", middleware.RequireRole(models.RoleAdmin), h.UpdateUserInfo)
	api.PUT("/users/:id/status", middleware.RequireRole(models.RoleAdmin), h.UpdateUserStatus)
	api.DELETE("/users/:id", middleware.RequireRole(models.RoleAdmin), h.DeleteUser)
	api.POST("/users/export", middleware.RequireRole(models.RoleAdmin), h.ExportUsers)

	// ПРОЕКТЫ
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:id", h.GetProject)
	api.POST("/projects", h.CreateProject)
	api.PUT("/projects/:id", h.UpdateProject)
	api.DELETE("/projects/:id", h.DeleteProject)
	api.GET("/archived-project", h.ListArchivedProjects)

	// ПРОГРЕСС
	api.GET("/processes", h.ListProcesses)
	api.GET("/processes/:id", h.GetProcess)
	api.PUT("/processes/:id", h.UpdateProcess)

	// ЗАДАЧИ
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/member", h.ListMemberTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.POST("/tasks", h.CreateTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.PUT("/tasks/:id/status", h.UpdateTaskStatus)

	// КОММЕНТАРИИ
	api.GET("/tasks/:id/comments", h.ListTaskComments)
	api.POST("/tasks/:id/comments", h.CreateTaskComment)

	// ФАЙЛЫ
	api.POST("/upload", h.UploadFile)
	api.GET("/download/*filepath", h.DownloadFile)

	// АУДИТ
	api.GET("/audit", middleware.RequireRole(models.RoleAdmin), h.ListAuditLogs)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
