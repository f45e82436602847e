package main

import (
    "context"
    "fmt"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/jcbaxter/askbot-devel/config"
    "github.com/jcbaxter/askbot-devel/internal/api"
    "github.com/jcbaxter/askbot-devel/internal/api/handler"
    "github.com/jcbaxter/askbot-devel/internal/repository"
    "github.com/jcbaxter/askbot-devel/internal/service"
    "github.com/jcbaxter/askbot-devel/pkg/database"
    "github.com/jcbaxter/askbot-devel/pkg/logger"
    "github.com/jcbaxter/askbot-devel/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
    cfg := must(config.Load())
    if err := logger.Init(cfg.Log.Level); err != nil {
        panic(err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        } else {
            defer sentry.Flush(2 * time.Second)
        }
    }

    if cfg.Trace.Enabled {
        shutdown := must(tracing.Init(context.Background(), cfg.Trace.Endpoint, "group-messaging"))
        defer func() { _ = shutdown(context.Background()) }()
    }

    db := must(database.InitDB(cfg))

    var cache *redis.Client
    if cfg.Redis.Addr != "" {
        cache = redis.NewClient(&redis.Options{
            Addr:     cfg.Redis.Addr,
            Password: cfg.Redis.Password,
            DB:       cfg.Redis.DB,
        })
    }

    msgSvc := service.NewMessageService(db, service.PlainRenderer{})
    senderSvc := service.NewSenderService(
        repository.NewSenderListRepository(db),
        cache,
        time.Duration(cfg.Redis.TTLSeconds)*time.Second,
    )
    userSvc := service.NewUserService(db)

    r := api.NewRouter(handler.New(msgSvc, senderSvc, userSvc), cfg.Server.Mode)

    logger.Info("server starting", zap.Int("port", cfg.Server.Port))
    if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
        logger.Fatal("server exited", zap.Error(err))
    }
}
