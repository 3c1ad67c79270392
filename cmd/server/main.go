package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/printshop/backend/internal/application/finance"
	printingapp "github.com/printshop/backend/internal/application/printing"
	reportapp "github.com/printshop/backend/internal/application/report"
	"github.com/printshop/backend/internal/infrastructure/config"
	"github.com/printshop/backend/internal/infrastructure/logger"
	"github.com/printshop/backend/internal/infrastructure/pdf"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/interfaces/http/handler"
	"github.com/printshop/backend/internal/interfaces/http/middleware"
	"github.com/printshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting printshop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	impressionRepo := persistence.NewGormImpressionRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	// Application services
	impressionService := printingapp.NewImpressionService(impressionRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	reportService := reportapp.NewService(impressionRepo, expenseRepo)
	dashboardService := reportapp.NewDashboardService(impressionRepo, expenseRepo)

	if cfg.PDF.Enabled {
		renderer, err := pdf.NewChromedpRenderer(cfg.PDF, log)
		if err != nil {
			log.Fatal("Failed to start PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = renderer.Close()
		}()
		reportService.WithRenderer(renderer)
		log.Info("PDF renderer enabled")
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(corsCfg),
	)

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.ImpressionRoutes(handler.NewImpressionHandler(impressionService))).
		Register(handler.ExpenseRoutes(handler.NewExpenseHandler(expenseService))).
		Register(handler.ReportRoutes(handler.NewReportHandler(reportService, dashboardService))).
		Register(handler.SystemRoutes(handler.NewSystemHandler(db.Ping)))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
