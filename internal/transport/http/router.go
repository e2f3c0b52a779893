package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/todo-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/todo-api/internal/usecase"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authUsecase *usecase.AuthUsecase, userHandler *handler.UserHandler, todoHandler *handler.TodoHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(authUsecase, logger)

	// Public account routes
	r.POST("/users", userHandler.Register)
	r.POST("/users/login", userHandler.Login)

	// Protected account routes
	me := r.Group("/users/me", authMW)
	me.GET("", userHandler.Me)
	me.DELETE("/token", userHandler.Logout)

	// Protected todo routes
	todos := r.Group("/todos", authMW)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.GetByID)
	todos.PATCH("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	return r
}
