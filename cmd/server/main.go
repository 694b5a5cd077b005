package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCart/internal/auth"
	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/internal/config"
	"MiniCart/internal/gateway"
	"MiniCart/pkg/kit"
)

const service = "minicart"

func main() {
	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.WeakSecret() {
		log.Warn("SECRET_KEY is shorter than recommended", zap.Int("min_len", config.MinSecretLen))
	}

	seeds, err := loadSeeds(context.Background(), cfg)
	if err != nil {
		log.Fatal("load catalog seed failed", zap.Error(err))
	}
	products, err := catalog.New(seeds)
	if err != nil {
		log.Fatal("invalid catalog seed", zap.Error(err))
	}
	log.Info("catalog loaded", zap.Int("products", products.Len()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	carts := cart.NewStore()
	reg.MustRegister(catalog.NewStockCollector(products), cart.NewReservedCollector(carts))

	users, err := auth.NewSeededMemStore(auth.DefaultUsers())
	if err != nil {
		log.Fatal("seed users failed", zap.Error(err))
	}
	tokens := auth.NewTokenMaker(cfg.SecretKey)

	verifier := auth.Chain{auth.LocalVerifier{Tokens: tokens}}
	if cfg.GoogleClientID != "" {
		verifier = append(verifier, auth.NewGoogleVerifier(cfg.GoogleClientID))
	}

	h := gateway.NewHandler(gateway.Deps{
		Auth: &auth.Server{
			Log:             log.Named("auth"),
			Users:           users,
			Tokens:          tokens,
			TokenTTL:        cfg.TokenTTL,
			LoginLimiter:    kit.NewIPRateLimiter(cfg.LoginLimitPerMin, time.Minute),
			RegisterLimiter: kit.NewIPRateLimiter(cfg.RegisterLimitPerMin, time.Minute),
		},
		Verifier: verifier,
		Catalog:  &catalog.Server{Catalog: products, Log: log.Named("catalog")},
		Cart: &cart.Server{
			Service: cart.NewService(products, carts, log.Named("cart"), cart.NewMetrics(reg)),
			Log:     log.Named("cart"),
		},
		StaticDir:          cfg.StaticDir,
		ImagesDir:          cfg.ImagesDir,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// loadSeeds prefers DATABASE_URL, then CATALOG_SEED_FILE, then the built-in seed.
func loadSeeds(ctx context.Context, cfg *config.Config) ([]catalog.Seed, error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		return catalog.NewPostgresSeedSource(pool).Load(ctx)
	case cfg.CatalogSeedFile != "":
		return catalog.LoadSeedFile(cfg.CatalogSeedFile)
	default:
		return catalog.DefaultSeed(), nil
	}
}
