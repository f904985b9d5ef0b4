package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/docchat/internal/middleware"
	"github.com/xxxsen/docchat/internal/pkg/response"
)

type RouterDeps struct {
	Chat         *ChatHandler
	Sessions     *SessionHandler
	Search       *SearchHandler
	UploadWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	limited := api.Group("")
	limited.Use(middleware.RateLimit(deps.UploadWindow))
	limited.POST("/chat", deps.Chat.Chat)
	limited.POST("/sessions/:id/files", deps.Sessions.Upload)

	api.POST("/search", deps.Search.Search)
	api.POST("/sessions", deps.Sessions.Create)
	api.GET("/sessions/:id/files", deps.Sessions.ListFiles)
	api.GET("/sessions/:id/files/:name", deps.Sessions.GetFile)
	api.GET("/sessions/:id/messages", deps.Sessions.Messages)
	api.GET("/sessions/:id/search", deps.Search.SessionSearch)
}
