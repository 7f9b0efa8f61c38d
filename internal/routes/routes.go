package routes

import (
	"time"

	"github.com/aidsync/aidsync/internal/handlers"
	custommw "github.com/aidsync/aidsync/internal/middleware"
	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RegisterRoutes wires every handler under /api/v1. All routes except
// login sit behind the session gate; write routes are additionally
// gated on the capability table.
func RegisterRoutes(
	router chi.Router,
	guard *session.Guard,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	beneficiaryHandler *handlers.BeneficiaryHandler,
	inventoryHandler *handlers.InventoryHandler,
	distributionHandler *handlers.DistributionHandler,
	userHandler *handlers.UserHandler,
) {
	router.Route("/api/v1", func(r chi.Router) {
		// Brute-force backstop on top of the account lockout policy
		r.With(httprate.LimitByIP(10, 1*time.Minute)).
			Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(custommw.RequireSession(guard))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.With(custommw.RequireFeature(guard, models.FeatureDashboardView)).
				Get("/dashboard/stats", dashboardHandler.Stats)

			r.Route("/beneficiaries", func(r chi.Router) {
				r.With(custommw.RequireFeature(guard, models.FeatureBeneficiariesView)).
					Get("/", beneficiaryHandler.List)
				r.With(custommw.RequireFeature(guard, models.FeatureBeneficiariesView)).
					Get("/{id}", beneficiaryHandler.Get)
				r.With(custommw.RequireFeature(guard, models.FeatureBeneficiariesWrite)).
					Post("/", beneficiaryHandler.Create)
				r.With(custommw.RequireFeature(guard, models.FeatureBeneficiariesWrite)).
					Put("/{id}", beneficiaryHandler.Update)
				r.With(custommw.RequireFeature(guard, models.FeatureBeneficiariesWrite)).
					Delete("/{id}", beneficiaryHandler.Deactivate)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.With(custommw.RequireFeature(guard, models.FeatureInventoryView)).
					Get("/", inventoryHandler.List)
				r.With(custommw.RequireFeature(guard, models.FeatureInventoryView)).
					Get("/{id}", inventoryHandler.Get)
				r.With(custommw.RequireFeature(guard, models.FeatureInventoryWrite)).
					Post("/", inventoryHandler.Create)
				r.With(custommw.RequireFeature(guard, models.FeatureInventoryWrite)).
					Put("/{id}", inventoryHandler.Update)
				r.With(custommw.RequireFeature(guard, models.FeatureInventoryWrite)).
					Post("/{id}/movements", inventoryHandler.RecordMovement)
			})

			r.Route("/distributions", func(r chi.Router) {
				r.With(custommw.RequireFeature(guard, models.FeatureDistributionsView)).
					Get("/", distributionHandler.List)
				r.With(custommw.RequireFeature(guard, models.FeatureDistributionsWrite)).
					Post("/", distributionHandler.Record)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(custommw.RequireFeature(guard, models.FeatureAdminManage))
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Put("/{id}", userHandler.Update)
				r.Post("/{id}/unlock", userHandler.Unlock)
			})
		})
	})
}
