package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"catalog-storefront/internal/checkout"
	"catalog-storefront/internal/config"
	"catalog-storefront/internal/db"
	"catalog-storefront/internal/httpserver"
	"catalog-storefront/internal/notify"
	categoryrepo "catalog-storefront/internal/repository/category"
	productrepo "catalog-storefront/internal/repository/product"
	stockrepo "catalog-storefront/internal/repository/stock"
	cartsvc "catalog-storefront/internal/service/cart"
	categorysvc "catalog-storefront/internal/service/category"
	productsvc "catalog-storefront/internal/service/product"
	"catalog-storefront/internal/service/scanauth"
	stocksvc "catalog-storefront/internal/service/stock"
	"catalog-storefront/internal/session"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	ready := map[string]httpserver.Pinger{"db": dbpool}

	var sessions session.Store
	switch cfg.SessionBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		sessions = session.NewRedis(rdb, cfg.SessionTTL)
		ready["sessions"] = sessions
		logger.Printf("cart sessions stored in redis at %s", cfg.RedisAddr)
	case "memory", "":
		sessions = session.NewMemory(cfg.SessionTTL)
		logger.Printf("cart sessions stored in memory")
	default:
		logger.Fatalf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if strings.TrimSpace(cfg.WhatsAppPhone) == "" {
		logger.Printf("WHATSAPP_PHONE is empty, checkout confirmation is disabled")
	}
	encoder := checkout.NewEncoder(cfg.WhatsAppPhone)
	encoder.BaseURL = cfg.CheckoutBaseURL
	flow := checkout.NewFlow(encoder, logger)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo, cfg.ImageBaseURL)
	categoryService := categorysvc.New(categoryrepo.NewPostgres(dbpool))
	stockService := stocksvc.New(stockrepo.NewPostgres(dbpool, logger))
	cartService := cartsvc.New(sessions, productService, notify.NewBoard(cfg.ToastDuration), flow, logger)

	scanAuth, err := scanauth.New(cfg.ScanPassword)
	if err != nil {
		logger.Fatalf("init scan auth: %v", err)
	}
	if !scanAuth.Configured() {
		logger.Printf("SCAN_PASSWORD is empty, stock scanning is disabled")
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		ProductSvc:    productService,
		CategorySvc:   categoryService,
		CartSvc:       cartService,
		StockSvc:      stockService,
		ScanAuth:      scanAuth,
		Ready:         ready,
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.SecureCookies,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
