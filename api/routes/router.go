package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opsdeskhq/opsdesk-backend/api/controllers"
	"github.com/opsdeskhq/opsdesk-backend/api/middleware"
	"github.com/opsdeskhq/opsdesk-backend/internal/auth"
	"github.com/opsdeskhq/opsdesk-backend/internal/dashboard"
	"github.com/opsdeskhq/opsdesk-backend/internal/equipment"
	"github.com/opsdeskhq/opsdesk-backend/internal/history"
	"github.com/opsdeskhq/opsdesk-backend/internal/receipts"
	"github.com/opsdeskhq/opsdesk-backend/internal/subscriptions"
	"github.com/opsdeskhq/opsdesk-backend/pkg/auth/session"
	"github.com/opsdeskhq/opsdesk-backend/pkg/config"
	"github.com/opsdeskhq/opsdesk-backend/pkg/logger"
	"github.com/opsdeskhq/opsdesk-backend/pkg/metrics"
)

// Params bundles everything the router needs wired up.
type Params struct {
	Config         *config.Config
	Logger         *logger.Logger
	HealthDeps     map[string]controllers.Pinger
	SessionChecker session.AccessSessionChecker
	Registry       prometheus.Gatherer
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService          auth.Service
	SubscriptionsService subscriptions.Service
	EquipmentService     equipment.Service
	HistoryService       history.Service
	DashboardService     dashboard.Service
	ReceiptsService      receipts.Service
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.HealthDeps))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	// Reached from scanned QR codes, so it stays unauthenticated.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/equipment/{equipmentId}", controllers.PublicEquipmentView(p.EquipmentService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", controllers.SubscriptionList(p.SubscriptionsService, logg))
			r.Post("/", controllers.SubscriptionCreate(p.SubscriptionsService, logg))
			r.Get("/{subscriptionId}", controllers.SubscriptionGet(p.SubscriptionsService, logg))
			r.Put("/{subscriptionId}", controllers.SubscriptionUpdate(p.SubscriptionsService, logg))
			r.Delete("/{subscriptionId}", controllers.SubscriptionDelete(p.SubscriptionsService, logg))
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", controllers.EquipmentList(p.EquipmentService, logg))
			r.Post("/", controllers.EquipmentCreate(p.EquipmentService, logg))
			r.Get("/{equipmentId}", controllers.EquipmentGet(p.EquipmentService, logg))
			r.Put("/{equipmentId}", controllers.EquipmentUpdate(p.EquipmentService, logg))
			r.Delete("/{equipmentId}", controllers.EquipmentDelete(p.EquipmentService, logg))
			r.Get("/{equipmentId}/qr", controllers.EquipmentQR(p.EquipmentService, cfg.Public, logg))
			r.Get("/{equipmentId}/history", controllers.EquipmentHistoryList(p.HistoryService, logg))
		})

		r.Post("/equipment-history", controllers.EquipmentHistoryLog(p.HistoryService, logg))

		r.Get("/dashboard", controllers.DashboardOverview(p.DashboardService, logg))

		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", controllers.ReceiptList(p.ReceiptsService, logg))
			r.Post("/", controllers.ReceiptUpload(p.ReceiptsService, cfg.Receipts, logg))
			r.Post("/presign", controllers.ReceiptPresign(p.ReceiptsService, logg))
		})
	})

	return r
}
