package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-service/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, todoHandler *handler.TodoHandler, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Unsupported verbs on a known path get an explicit 405.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.POST("/auth/login", authHandler.Login)

	// Protected todo routes. The bearer-token gate is the single access
	// control check: every authenticated identity shares the same list.
	todos := r.Group("/todos", middleware.Auth(jwtKey))
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.PUT("", todoHandler.Update)
	todos.DELETE("", todoHandler.Delete)

	return r
}
