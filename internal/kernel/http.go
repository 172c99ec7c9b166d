// Package kernel assembles the HTTP handler: global middleware, the API
// routes and the operational endpoints.
package kernel

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/routes"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/bind"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/reqid"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
)

// Deps are the long-lived resources the handler is built from. Cache may be
// nil; Events and Limiter are created when nil.
type Deps struct {
	Config  *config.App
	DB      *gorm.DB
	Cache   *cache.Store
	Storage *storage.Manager
	Events  *event.Bus
	Limiter *middleware.IPLimiter
}

// NewHandler wires repositories, services and controllers and returns the
// root handler.
func NewHandler(d Deps) (http.Handler, error) {
	if d.Config == nil || d.DB == nil || d.Storage == nil {
		return nil, errors.New("kernel: config, database and storage are required")
	}

	tokens, err := auth.NewTokens(d.Config.JWTSecret, d.Config.TokenTTL)
	if err != nil {
		return nil, err
	}
	if d.Events == nil {
		d.Events = event.New()
	}
	if d.Limiter == nil {
		d.Limiter = middleware.NewIPLimiter(d.Config.RateLimitRPS, d.Config.RateLimitBurst)
	}
	ListenOrderEvents(d.Events)

	userRepo := repositories.NewUserRepository(d.DB)
	categoryRepo := repositories.NewCategoryRepository(d.DB, d.Cache)
	productRepo := repositories.NewProductRepository(d.DB)

	c := routes.Controllers{
		Users: controllers.NewUserController(
			services.NewUserService(userRepo, auth.BcryptHasher{Cost: d.Config.BcryptCost}, tokens),
		),
		Categories: controllers.NewCategoryController(services.NewCategoryService(categoryRepo)),
		Products: controllers.NewProductController(
			services.NewProductService(productRepo, categoryRepo, d.Storage.Default()),
			d.Config.MaxUploadBytes,
		),
		Orders: controllers.NewOrderController(services.NewOrderService(
			repositories.NewOrderRepository(d.DB),
			repositories.NewItemRepository(d.DB),
			productRepo,
			d.Events,
		)),
	}

	r := router.New()

	// Outermost first: metrics sees total latency, recovery guards everything
	// below it, the request id exists before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(d.Limiter))
	r.Use(bind.Limit(d.Config.MaxBodyBytes))

	files := http.StripPrefix("/files", http.FileServer(http.Dir(d.Storage.Local().Root())))
	mount(r, c, middleware.Authenticate(tokens), files, healthHandler(d.DB))

	return r.Handler(), nil
}

// RouteTable lists every route the kernel mounts without building any
// dependency.
func RouteTable() []router.RouteInfo {
	r := router.New()
	pass := func(next http.Handler) http.Handler { return next }
	mount(r, routes.Controllers{}, pass, http.NotFoundHandler(), http.NotFound)
	return r.Routes()
}

func mount(r *router.Router, c routes.Controllers, gate router.Middleware, files http.Handler, health http.HandlerFunc) {
	r.Get("/health", "health", health)
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Mount("/files", "files", files)

	routes.RegisterAPI(r, c, gate)
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			logger.WithCtx(r.Context()).Error("health check failed", "error", err)
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}

// ListenOrderEvents counts every order transition and logs it off the
// request path.
func ListenOrderEvents(bus *event.Bus) {
	count := func(_ context.Context, e event.Event) {
		metrics.OrderTransitions.WithLabelValues(e.Name).Inc()
	}
	audit := func(ctx context.Context, e event.Event) {
		logger.WithCtx(ctx).Info("order transition",
			"event", e.Name,
			"order_id", e.OrderID,
			"table", e.Table,
			"at", e.At,
		)
	}
	for _, name := range []string{event.OrderCreated, event.OrderSent, event.OrderFinished, event.OrderRemoved} {
		bus.Listen(name, count)
		bus.ListenAsync(name, audit)
	}
}
