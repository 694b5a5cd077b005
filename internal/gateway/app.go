package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MiniCart/internal/auth"
	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	Auth     *auth.Server
	Verifier auth.Verifier
	Catalog  *catalog.Server
	Cart     *cart.Server

	StaticDir          string
	ImagesDir          string
	CORSAllowedOrigins []string
}

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, deps, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", healthz)

	deps.Auth.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.Authenticate(deps.Verifier, httpDeps.Log))
		api.Get("/whoami", auth.WhoAmI)
		api.Mount("/products", deps.Catalog.Routes())
		api.Mount("/carrito", deps.Cart.Routes())
	})

	setupStatic(r, deps)
	return r
}

func setupMiddleware(r *chi.Mux, deps Deps, httpDeps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(httpDeps.Log))

	if len(deps.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: deps.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			ExposedHeaders: []string{"X-Request-Id"},
		}))
	}
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RouteLabel))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupStatic(r *chi.Mux, deps Deps) {
	if deps.ImagesDir != "" {
		r.Handle("/imagenes/*", http.StripPrefix("/imagenes/", http.FileServer(http.Dir(deps.ImagesDir))))
	}
	if deps.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
