// Package app wires the storefront core together and runs the API server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/mobile-zone/catalogdata"
	"github.com/xenking/mobile-zone/internal/badge"
	"github.com/xenking/mobile-zone/internal/domain/cart"
	"github.com/xenking/mobile-zone/internal/domain/catalog"
	"github.com/xenking/mobile-zone/internal/domain/deal"
	"github.com/xenking/mobile-zone/internal/handler"
	"github.com/xenking/mobile-zone/internal/storage/localstore"
	"github.com/xenking/mobile-zone/pkg/health"
	"github.com/xenking/mobile-zone/pkg/httpmiddleware"
)

// toastNotifier surfaces the "item added" signal as a log line. A UI shell
// replaces this with its own toast implementation.
type toastNotifier struct {
	lg *zap.Logger
}

func (n toastNotifier) ItemAdded(name string) {
	n.lg.Info("Added to cart", zap.String("product", name))
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.String("data_dir", cfg.DataDir))

	// Device-local state directory.
	kv, err := localstore.New(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open local store")
	}

	// Catalog: embedded seed by default, file override for custom builds.
	var products []catalog.Product
	if cfg.CatalogPath != "" {
		products, err = catalogdata.LoadFile(cfg.CatalogPath)
	} else {
		products, err = catalogdata.Seed()
	}
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	store, err := catalog.NewStore(products)
	if err != nil {
		return errors.Wrap(err, "build catalog")
	}
	lg.Info("Catalog loaded", zap.Int("products", store.Len()))

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("state-dir", 5*time.Second, health.DirWritableCheck(cfg.DataDir))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	cartSvc := cart.NewService(
		localstore.NewCartStorage(kv),
		toastNotifier{lg: lg.Named("toast")},
		cart.Config{FreeShippingMin: cfg.Cart.FreeShippingMin, DeliveryFee: cfg.Cart.DeliveryFee},
		lg.Named("cart"),
	)
	counter := badge.New(cartSvc)
	dealSvc := deal.NewService(localstore.NewDealStorage(kv))

	// Prime the deal deadline so the first countdown render has a value.
	lg.Info("Deal countdown active", zap.Time("deadline", dealSvc.Deadline()))

	h := handler.New(handler.Config{PageSize: cfg.PageSize}, store, cartSvc, counter, dealSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("storefront-api", m.TracerProvider(), m.MeterProvider()),
			httpmiddleware.LogRequests(),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		// Rolls the deal deadline over at midnight without waiting for a
		// client request.
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				dealSvc.Deadline()
			}
		}
	})
	g.Go(func() error {
		// Graceful shutdown: drain readiness first so load balancers stop
		// routing, then stop the server.
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		return nil
	})

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	return g.Wait()
}
