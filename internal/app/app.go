package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"quizapp_backend/internal/config"
	"quizapp_backend/internal/controller"
	"quizapp_backend/internal/repository"
	"quizapp_backend/internal/repository/memory"
	"quizapp_backend/internal/service"
	"quizapp_backend/pkg/configwatcher"
	"quizapp_backend/pkg/database"
	"quizapp_backend/pkg/logger"
	"quizapp_backend/pkg/monitoring"
	"quizapp_backend/pkg/security"
	"quizapp_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB

	tracer          *sdktrace.TracerProvider
	limiter         *security.RateLimiter
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type stores struct {
	quizzes service.QuizStore
	results service.ResultStore
}

type services struct {
	quiz   *service.QuizService
	result *service.ResultService
}

type controllers struct {
	quiz   *controller.QuizController
	result *controller.ResultController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热加载入口：只有日志级别等运行期可变项会生效
func (a *App) ApplyConfig(cfg *config.Config) {
	logger.SetLevel(cfg)
	logger.Log.Info("Log level applied", zap.String("level", logger.Level().String()))

	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initStores() (*stores, error) {
	switch a.Config.Database.Driver {
	case config.DriverMemory:
		logger.Log.Warn("Using in-memory store, data will be lost on restart")
		return &stores{
			quizzes: memory.NewQuizStore(),
			results: memory.NewResultStore(),
		}, nil
	case config.DriverMySQL:
		db, err := database.InitDB(&a.Config.Database, a.Config.Server.Mode)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.DB = db

		if a.Config.ShouldMigrate() {
			if err := database.Migrate(db); err != nil {
				return nil, fmt.Errorf("migrate database: %w", err)
			}
		}

		return &stores{
			quizzes: repository.NewQuizRepository(db),
			results: repository.NewResultRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", a.Config.Database.Driver)
	}
}

func (a *App) initServices(st *stores) *services {
	return &services{
		quiz:   service.NewQuizService(st.quizzes, st.results),
		result: service.NewResultService(st.results),
	}
}

func (a *App) initControllers(s *services) (*controllers, error) {
	// 内存模式下 pinger 保持 nil 接口
	var pinger controller.Pinger
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return nil, err
		}
		pinger = sqlDB
	}

	return &controllers{
		quiz:   controller.NewQuizController(s.quiz),
		result: controller.NewResultController(s.result),
		health: controller.NewHealthController(pinger, a.Config.Database.Driver),
	}, nil
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config:  cfg,
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
	}

	st, err := app.initStores()
	if err != nil {
		return nil, err
	}
	svcs := app.initServices(st)
	ctrls, err := app.initControllers(svcs)
	if err != nil {
		return nil, err
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	return app, nil
}

// Run 启动 HTTP 服务，收到中断信号或 ctx 取消后优雅退出
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCleanup := make(chan struct{})
	go a.limiter.Run(stopCleanup)
	defer close(stopCleanup)

	if a.Config.File != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.File, a.ApplyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.Close()
	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放追踪与数据库资源
func (a *App) Close() {
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}
