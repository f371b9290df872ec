package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sellerdesk/internal/auth"
	"sellerdesk/internal/config"
	apphttp "sellerdesk/internal/http"
	"sellerdesk/internal/notify"
	"sellerdesk/internal/ratelimit"
	"sellerdesk/internal/repository/sqlite"
	"sellerdesk/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.CookieSecret) == "" {
		logger.Fatalf("auth cookie secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	invoiceRepo := sqlite.NewInvoiceRepository(db)
	socialRepo := sqlite.NewSocialRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	analyticsRepo := sqlite.NewAnalyticsRepository(db)

	inits := []struct {
		name string
		repo interface{ Init(context.Context) error }
	}{
		{"user", userRepo},
		{"product", productRepo},
		{"order", orderRepo},
		{"post", postRepo},
		{"invoice", invoiceRepo},
		{"social", socialRepo},
		{"activity", activityRepo},
		{"analytics", analyticsRepo},
	}
	for _, it := range inits {
		if err := it.repo.Init(ctx); err != nil {
			logger.Fatalf("init %s repository: %v", it.name, err)
		}
	}

	verifier, err := auth.NewSessionVerifier(cfg.Auth.CookieSecret, cfg.Auth.AppID)
	if err != nil {
		logger.Fatalf("setup session verifier: %v", err)
	}

	userService := service.NewUserService(userRepo, verifier, cfg.Auth.OwnerOpenID)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo)
	postService := service.NewPostService(postRepo, activityRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo)
	socialService := service.NewSocialService(socialRepo)
	analyticsService := service.NewAnalyticsService(productRepo, orderRepo, activityRepo, analyticsRepo)

	notifier := notify.New(cfg.Notify.Endpoint, cfg.Notify.APIKey, logger)

	limiter := ratelimit.New(cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	defer limiter.Stop()

	pipeline := apphttp.NewPipeline(limiter, userService, cfg.Auth.SessionCookie, cfg.Security.SecureCookies, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.HandlerConfig{
		Pipeline:      pipeline,
		Users:         userService,
		Products:      productService,
		Orders:        orderService,
		Posts:         postService,
		Invoices:      invoiceService,
		Social:        socialService,
		Analytics:     analyticsService,
		Notifier:      notifier,
		DB:            db,
		SessionCookie: cfg.Auth.SessionCookie,
		SecureCookies: cfg.Security.SecureCookies,
		Logger:        logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
