package main

import (
    "context"
    "errors"
    "flag"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/gin-gonic/gin"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"
    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    _ "github.com/d60-Lab/shop-analytics/docs"
    "github.com/d60-Lab/shop-analytics/internal/api"
    "github.com/d60-Lab/shop-analytics/internal/api/handler"
    "github.com/d60-Lab/shop-analytics/internal/config"
    "github.com/d60-Lab/shop-analytics/internal/observability"
    "github.com/d60-Lab/shop-analytics/internal/repository"
    "github.com/d60-Lab/shop-analytics/internal/service"
    "github.com/d60-Lab/shop-analytics/pkg/logger"
)

// @title shop-analytics API
// @version 1.0
// @description 面向管理端的销售与客户分析服务
// @BasePath /
func main() {
    var cfgPath string
    flag.StringVar(&cfgPath, "config", "", "配置文件路径，缺省读取工作目录 config.yaml")
    flag.Parse()

    cfg, err := config.Load(cfgPath)
    if err != nil {
        log.Fatalf("load config: %v", err)
    }
    if err := logger.Init(cfg.Log.Level, cfg.Log.JSON); err != nil {
        log.Fatalf("init logger: %v", err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        } else {
            defer sentry.Flush(2 * time.Second)
        }
    }

    ctx := context.Background()
    shutdownTracing, err := observability.InitTracing(ctx, cfg.Otel.Endpoint, "shop-analytics")
    if err != nil {
        logger.Warn("tracing init failed", zap.Error(err))
        shutdownTracing = func(context.Context) error { return nil }
    }

    var dialector gorm.Dialector
    switch cfg.Database.Driver {
    case "postgres":
        dialector = postgres.Open(cfg.Database.DSN)
    default:
        dialector = sqlite.Open(cfg.Database.DSN)
    }
    db, err := gorm.Open(dialector, &gorm.Config{})
    if err != nil {
        logger.Error("open database failed", zap.Error(err))
        os.Exit(1)
    }
    if err := repository.InitSchema(db); err != nil {
        logger.Error("migrate schema failed", zap.Error(err))
        os.Exit(1)
    }

    var rdb *redis.Client
    if cfg.Redis.Addr != "" {
        rdb = redis.NewClient(&redis.Options{
            Addr:     cfg.Redis.Addr,
            Password: cfg.Redis.Password,
            DB:       cfg.Redis.DB,
        })
        if err := rdb.Ping(ctx).Err(); err != nil {
            logger.Warn("redis unreachable, traffic report falls back to synthetic data", zap.Error(err))
        }
    }

    orderRepo := repository.NewOrderRepository(db)
    detailRepo := repository.NewOrderDetailRepository(db)
    userRepo := repository.NewUserRepository(db)
    productRepo := repository.NewProductRepository(db)
    activityRepo := repository.NewActivityRepository(db)

    recorder := service.NewActivityRecorder(activityRepo, 4096)
    stopRecorder := recorder.Start(2)

    h := handler.New(
        service.NewReportService(orderRepo, detailRepo, userRepo, productRepo),
        service.NewAdvancedReportService(orderRepo, detailRepo, userRepo),
        service.NewDashboardService(orderRepo, detailRepo, userRepo, productRepo),
        service.NewActivityService(activityRepo),
        service.NewTrafficService(rdb),
        service.NewAuthService(userRepo, recorder, cfg.JWT.Secret, cfg.JWT.TTL),
    )

    if cfg.Server.Mode == "debug" {
        gin.SetMode(gin.DebugMode)
    } else {
        gin.SetMode(gin.ReleaseMode)
    }
    router := api.NewRouter(h, api.RouterConfig{
        JWTSecret:     cfg.JWT.Secret,
        RateRPS:       cfg.RateLimit.RPS,
        RateBurst:     cfg.RateLimit.Burst,
        EnableTracing: cfg.Otel.Endpoint != "",
    })

    srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
    go func() {
        logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("server stopped", zap.Error(err))
            os.Exit(1)
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit
    logger.Info("shutting down")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Warn("server shutdown", zap.Error(err))
    }
    if err := stopRecorder(shutdownCtx); err != nil {
        logger.Warn("recorder shutdown", zap.Error(err))
    }
    if err := shutdownTracing(shutdownCtx); err != nil {
        logger.Warn("tracing shutdown", zap.Error(err))
    }
    if rdb != nil {
        _ = rdb.Close()
    }
    if err := repository.Close(db); err != nil {
        logger.Warn("close database", zap.Error(err))
    }
}
