package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/classmart/classmart-backend/api/routes"
	authsvc "github.com/classmart/classmart-backend/internal/auth"
	cartsvc "github.com/classmart/classmart-backend/internal/cart"
	categorysvc "github.com/classmart/classmart-backend/internal/categories"
	checkoutsvc "github.com/classmart/classmart-backend/internal/checkout"
	dashboardsvc "github.com/classmart/classmart-backend/internal/dashboard"
	favoritesvc "github.com/classmart/classmart-backend/internal/favorites"
	"github.com/classmart/classmart-backend/internal/mailer"
	"github.com/classmart/classmart-backend/internal/media"
	ordersvc "github.com/classmart/classmart-backend/internal/orders"
	productsvc "github.com/classmart/classmart-backend/internal/products"
	usersvc "github.com/classmart/classmart-backend/internal/users"
	"github.com/classmart/classmart-backend/pkg/auth/session"
	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/logger"
	"github.com/classmart/classmart-backend/pkg/metrics"
	"github.com/classmart/classmart-backend/pkg/migrate"
	"github.com/classmart/classmart-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	mediaStore, err := media.NewStore(cfg.Media)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare media store", err)
		os.Exit(1)
	}

	var mailSender mailer.Sender
	if cfg.Mail.Enabled() {
		mailSender, err = mailer.NewSendGrid(cfg.Mail, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
	} else {
		mailSender = mailer.NewNoop(logg)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	userRepo := usersvc.NewRepository(dbClient.DB())
	categoryRepo := categorysvc.NewRepository(dbClient.DB())
	productRepo := productsvc.NewRepository(dbClient.DB())
	cartRepo := cartsvc.NewRepository(dbClient.DB())
	favoriteRepo := favoritesvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())
	dashboardRepo := dashboardsvc.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:    userRepo,
		Sessions:    sessionManager,
		VerifyStore: redisClient,
		Mailer:      mailSender,
		JWTCfg:      cfg.JWT,
		PasswordCfg: cfg.Password,
		AppBaseURL:  cfg.App.BaseURL,
		Logger:      logg,
	})
	requireService(logg, "auth", err)

	categoryService, err := categorysvc.NewService(categorysvc.ServiceParams{Repo: categoryRepo})
	requireService(logg, "categories", err)

	productService, err := productsvc.NewService(productsvc.ServiceParams{
		Repo:  productRepo,
		Media: mediaStore,
	})
	requireService(logg, "products", err)

	userService, err := usersvc.NewService(usersvc.ServiceParams{
		Repo:        userRepo,
		PasswordCfg: cfg.Password,
	})
	requireService(logg, "users", err)

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:        cartRepo,
		ProductRepo: productRepo,
		TotalMirror: redisClient,
		Logger:      logg,
	})
	requireService(logg, "cart", err)

	favoritesService, err := favoritesvc.NewService(favoritesvc.ServiceParams{
		Repo:        favoriteRepo,
		ProductRepo: productRepo,
	})
	requireService(logg, "favorites", err)

	ordersService, err := ordersvc.NewService(ordersvc.ServiceParams{
		Repo:   orderRepo,
		Client: dbClient,
		Mailer: mailSender,
	})
	requireService(logg, "orders", err)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		OrderRepo: orderRepo,
		CartRepo:  cartRepo,
		Client:    dbClient,
		Metrics:   checkoutMetrics,
		Logger:    logg,
	})
	requireService(logg, "checkout", err)

	dashboardService, err := dashboardsvc.NewService(dashboardsvc.ServiceParams{Repo: dashboardRepo})
	requireService(logg, "dashboard", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, mediaStore, registry, routes.Services{
			Auth:       authService,
			Categories: categoryService,
			Products:   productService,
			Users:      userService,
			Cart:       cartService,
			Favorites:  favoritesService,
			Orders:     ordersService,
			Checkout:   checkoutService,
			Dashboard:  dashboardService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
