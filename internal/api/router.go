package api

import (
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    _ "github.com/jcbaxter/askbot-devel/docs"
    "github.com/jcbaxter/askbot-devel/internal/api/handler"
)

// NewRouter 组装 gin 引擎与全部路由
func NewRouter(h *handler.Handler, mode string) *gin.Engine {
    if mode != "" {
        gin.SetMode(mode)
    }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(otelgin.Middleware("group-messaging"))
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(RateLimit(100, 200))

    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    v1 := r.Group("/api/v1")
    {
        v1.POST("/users", h.CreateUser)
        v1.POST("/threads", h.CreateThread)
        v1.POST("/threads/responses", h.CreateResponse)
        v1.GET("/users/:user_id/threads", h.ListThreads)
        v1.GET("/users/:user_id/senders", h.ListSenders)
        v1.POST("/users/:user_id/threads/:message_id/archive", h.ArchiveThread)
        v1.POST("/users/:user_id/threads/:message_id/visit", h.VisitThread)
    }
    return r
}
