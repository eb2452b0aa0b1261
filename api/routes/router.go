package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printyke/printy-backend/api/controllers"
	"github.com/printyke/printy-backend/api/middleware"
	"github.com/printyke/printy-backend/internal/auth"
	"github.com/printyke/printy-backend/internal/catalog"
	"github.com/printyke/printy-backend/internal/quotes"
	"github.com/printyke/printy-backend/internal/shops"
	"github.com/printyke/printy-backend/pkg/auth/session"
	"github.com/printyke/printy-backend/pkg/config"
	"github.com/printyke/printy-backend/pkg/db"
	"github.com/printyke/printy-backend/pkg/logger"
	"github.com/printyke/printy-backend/pkg/metrics"
	"github.com/printyke/printy-backend/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	sessionManager sessionManager,
	authService auth.Service,
	registerService auth.RegisterService,
	shopService shops.Service,
	catalogService catalog.Service,
	quoteService quotes.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(registerService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Route("/shops", func(r chi.Router) {
			r.Post("/", controllers.ShopCreate(shopService, logg))
			r.Get("/mine", controllers.ShopsListMine(shopService, logg))
			r.Get("/by-slug/{slug}", controllers.ShopGetBySlug(shopService, logg))

			r.Route("/{shopID}", func(r chi.Router) {
				r.Get("/", controllers.ShopGet(shopService, logg))
				r.Put("/", controllers.ShopUpdate(shopService, logg))
				r.Delete("/", controllers.ShopDeactivate(shopService, logg))

				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.ProductsList(catalogService, logg))
					r.Post("/", controllers.ProductCreate(catalogService, logg))
					r.Get("/{productID}", controllers.ProductGet(catalogService, logg))
					r.Put("/{productID}", controllers.ProductUpdate(catalogService, logg))
					r.Delete("/{productID}", controllers.ProductDelete(catalogService, logg))
					r.Get("/{productID}/price-hint", controllers.ProductPriceHint(catalogService, logg))
				})

				r.Route("/papers", func(r chi.Router) {
					r.Get("/", controllers.PapersList(catalogService, logg))
					r.Post("/", controllers.PaperCreate(catalogService, logg))
					r.Put("/{paperID}", controllers.PaperUpdate(catalogService, logg))
					r.Delete("/{paperID}", controllers.PaperDelete(catalogService, logg))
				})

				r.Route("/machines", func(r chi.Router) {
					r.Get("/", controllers.MachinesList(catalogService, logg))
					r.Post("/", controllers.MachineCreate(catalogService, logg))
					r.Put("/{machineID}", controllers.MachineUpdate(catalogService, logg))
					r.Delete("/{machineID}", controllers.MachineDelete(catalogService, logg))
					r.Put("/{machineID}/rates", controllers.PrintingRateSet(catalogService, logg))
					r.Delete("/{machineID}/rates/{rateID}", controllers.PrintingRateDelete(catalogService, logg))
					r.Post("/{machineID}/rates/defaults", controllers.PrintingRatesApplyDefaults(catalogService, logg))
				})

				r.Route("/finishing-rates", func(r chi.Router) {
					r.Get("/", controllers.FinishingRatesList(catalogService, logg))
					r.Post("/", controllers.FinishingRateCreate(catalogService, logg))
					r.Put("/{rateID}", controllers.FinishingRateUpdate(catalogService, logg))
					r.Delete("/{rateID}", controllers.FinishingRateDelete(catalogService, logg))
				})

				r.Route("/materials", func(r chi.Router) {
					r.Get("/", controllers.MaterialsList(catalogService, logg))
					r.Post("/", controllers.MaterialCreate(catalogService, logg))
					r.Put("/{materialID}", controllers.MaterialUpdate(catalogService, logg))
					r.Delete("/{materialID}", controllers.MaterialDelete(catalogService, logg))
				})

				r.Route("/service-rates", func(r chi.Router) {
					r.Get("/", controllers.ServiceRatesList(catalogService, logg))
					r.Post("/", controllers.ServiceRateCreate(catalogService, logg))
					r.Put("/{rateID}", controllers.ServiceRateUpdate(catalogService, logg))
					r.Delete("/{rateID}", controllers.ServiceRateDelete(catalogService, logg))
				})

				r.Get("/quotes", controllers.QuotesListShop(quoteService, logg))
				r.Post("/quotes", controllers.QuoteCreate(quoteService, logg))
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/mine", controllers.QuotesListMine(quoteService, logg))

			r.Route("/{quoteID}", func(r chi.Router) {
				r.Get("/", controllers.QuoteGet(quoteService, logg))
				r.Post("/items", controllers.QuoteItemAdd(quoteService, logg))
				r.Put("/items/{itemID}", controllers.QuoteItemUpdate(quoteService, logg))
				r.Delete("/items/{itemID}", controllers.QuoteItemRemove(quoteService, logg))
				r.Put("/items/{itemID}/finishings", controllers.QuoteItemSetFinishings(quoteService, logg))
				r.Put("/items/{itemID}/services", controllers.QuoteItemSetServices(quoteService, logg))
				r.Put("/services", controllers.QuoteSetServices(quoteService, logg))

				r.Get("/preview", controllers.QuotePreview(quoteService, logg))
				r.Post("/submit", controllers.QuoteSubmit(quoteService, logg))
				r.Post("/price", controllers.QuotePrice(quoteService, logg))
				r.Post("/send", controllers.QuoteSend(quoteService, logg))
				r.Post("/accept", controllers.QuoteAccept(quoteService, logg))
				r.Post("/reject", controllers.QuoteReject(quoteService, logg))
			})
		})
	})

	return r
}
