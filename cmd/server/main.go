package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/warung-pos/internal/adapter/handler"
	"github.com/rl1809/warung-pos/internal/adapter/printer"
	"github.com/rl1809/warung-pos/internal/adapter/storage"
	"github.com/rl1809/warung-pos/internal/config"
	"github.com/rl1809/warung-pos/internal/core/receipt"
	"github.com/rl1809/warung-pos/internal/core/service"
	"github.com/rl1809/warung-pos/internal/port"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (empty for defaults + env)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog storage backend
	repo, closeStorage, err := openCatalogStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open catalog storage", zap.Error(err))
	}
	defer closeStorage()

	// Receipt pipeline
	formatter := receipt.NewFormatter(receipt.Header{
		Name:       cfg.Store.Name,
		Tagline:    cfg.Store.Tagline,
		Address:    cfg.Store.Address,
		FooterNote: cfg.Store.FooterNote,
	})
	sink, err := printer.NewFileSink(cfg.ReceiptDir, logger)
	if err != nil {
		logger.Fatal("failed to init receipt sink", zap.Error(err))
	}

	// Services
	catalogService := service.NewCatalogService(repo, logger)
	cartService := service.NewCartService()
	checkoutService := service.NewCheckoutService(cartService, formatter, sink, logger)

	// HTTP server
	router := setupRouter()
	handler.NewHTTPHandler(catalogService, cartService, checkoutService, cfg.AdminPIN, logger).Register(router)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("HTTP server stopped")
}

func setupRouter() *gin.Engine {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	return router
}

func openCatalogStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.CatalogRepository, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.Storage.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("connected to mysql")
		return storage.NewMySQLAdapter(db), func() { db.Close() }, nil

	default:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		logger.Info("connected to redis")
		return storage.NewRedisAdapter(rdb), func() { rdb.Close() }, nil
	}
}
