package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart-be/internal/cart"
	"foodcart-be/internal/checkout"
	"foodcart-be/internal/config"
	"foodcart-be/internal/db"
	"foodcart-be/internal/events"
	"foodcart-be/internal/graph"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/menu"
	"foodcart-be/internal/metrics"
	"foodcart-be/internal/middleware"
	"foodcart-be/internal/order"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const (
	sessionSweepInterval = 5 * time.Minute
	shutdownTimeout      = 10 * time.Second
)

var (
	initDBFunc      = db.NewDatabase
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := initDBFunc(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	publisher, err := events.Connect(cfg.NatsURL)
	if err != nil {
		return err
	}
	defer publisher.Close()

	app, err := newServer(cfg, database, locker, publisher)
	if err != nil {
		return err
	}

	go app.carts.Run(ctx, sessionSweepInterval)
	go app.limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.L().Info("🚀 GraphQL server running", zap.String("url", "http://localhost:"+cfg.AppPort+"/"))
	return serve(ctx, srv)
}

// server is the wired application: the HTTP handler plus the background
// workers the caller has to start.
type server struct {
	handler http.Handler
	carts   *cart.Registry
	limiter *middleware.RateLimiter
}

func newServer(cfg *config.Config, database *sql.DB, locker checkout.Locker, publisher events.Publisher) (*server, error) {
	pricing := cart.Pricing{
		DeliveryFee:    cfg.DeliveryFee,
		TaxRate:        cfg.TaxRate,
		CurrencySymbol: cfg.CurrencySymbol,
	}

	menuSvc := menu.NewService(menu.NewRepository(database))
	orderSvc := order.NewService(order.NewRepository(database), menuSvc, publisher, pricing)
	checkoutSvc := checkout.NewService(orderSvc, locker)
	carts := cart.NewRegistry(pricing, cfg.CartSessionTTL)

	exec, err := graph.NewSchema(&graph.Resolver{
		Carts:       carts,
		Pricing:     pricing,
		MenuSvc:     menuSvc,
		OrderSvc:    orderSvc,
		CheckoutSvc: checkoutSvc,
	})
	if err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)

	router := setupRouter(graph.NewHandler(exec))

	// Outermost first: request id, logging, CORS, auth, rate limit.
	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.AuthMiddleware([]byte(cfg.JWTSecret))(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)

	return &server{handler: h, carts: carts, limiter: limiter}, nil
}

func setupRouter(gql http.Handler) *httprouter.Router {
	router := httprouter.New()

	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	router.Handler(http.MethodGet, "/metrics", metrics.Default.Handler())
	router.Handler(http.MethodGet, "/query", gql)
	router.Handler(http.MethodPost, "/query", gql)
	router.Handler(http.MethodGet, "/", graph.PlaygroundHandler("/query"))

	return router
}

// newLocker picks the checkout lock backend. Redis is used when configured so
// that several instances share one lock per customer.
func newLocker(ctx context.Context, cfg *config.Config) (checkout.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.L().Warn("REDIS_ADDR not set, checkout locks are local to this instance")
		return checkout.NewLocalLocker(), func() {}, nil
	}

	client, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return checkout.NewRedisLocker(client), func() { client.Close() }, nil
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServerFunc(srv) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
