package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"servioBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Post("/user/upgrade", authMiddleware.ThenFunc(app.userHandler.UpgradeToProvider))
	mux.Put("/provider/settings", authMiddleware.ThenFunc(app.userHandler.SaveProviderSettings))
	mux.Put("/provider/specialty_price", authMiddleware.ThenFunc(app.userHandler.SetSpecialtyPrice))
	mux.Put("/provider/item_price", authMiddleware.ThenFunc(app.userHandler.SetItemPrice))

	// Catalog
	mux.Get("/services", standardMiddleware.ThenFunc(app.catalogHandler.GetServices))
	mux.Get("/services/:service_id/sub_services", standardMiddleware.ThenFunc(app.catalogHandler.GetSubServices))
	mux.Get("/sub_services/:sub_service_id/specialties", standardMiddleware.ThenFunc(app.catalogHandler.GetSpecialties))
	mux.Get("/services/:service_id/wizard_plan", standardMiddleware.ThenFunc(app.catalogHandler.GetWizardPlan))
	mux.Post("/services", adminAuthMiddleware.ThenFunc(app.catalogHandler.CreateService))
	mux.Post("/sub_services", adminAuthMiddleware.ThenFunc(app.catalogHandler.CreateSubService))
	mux.Post("/specialties", adminAuthMiddleware.ThenFunc(app.catalogHandler.CreateSpecialty))

	// Quote wizard
	mux.Get("/quote/draft", standardMiddleware.ThenFunc(app.quoteHandler.GetDraft))
	mux.Put("/quote/draft", standardMiddleware.ThenFunc(app.quoteHandler.UpdateDraft))
	mux.Post("/quote/draft/submit", authMiddleware.ThenFunc(app.quoteHandler.Submit))
	mux.Post("/quote", authMiddleware.ThenFunc(app.quoteHandler.SubmitDirect))
	mux.Post("/quote/photo", standardMiddleware.ThenFunc(app.quoteHandler.UploadPhoto))
	mux.Get("/quote/my", authMiddleware.ThenFunc(app.quoteHandler.ListMyQuotes))
	mux.Get("/quote/:id", authMiddleware.ThenFunc(app.quoteHandler.GetQuoteByID))
	mux.Put("/quote/:id/status", authMiddleware.ThenFunc(app.quoteHandler.UpdateStatus))

	// Matching
	mux.Post("/matches", standardMiddleware.Append(app.optionalAuth).ThenFunc(app.matchHandler.SearchProviders))

	// Ratings
	mux.Post("/rating", authMiddleware.ThenFunc(app.ratingHandler.AddRating))
	mux.Get("/rating/provider/:provider_id", standardMiddleware.ThenFunc(app.ratingHandler.GetProviderRatings))

	// Subscriptions and billing
	mux.Get("/subscription/plans", standardMiddleware.ThenFunc(app.subscriptionHandler.GetPlans))
	mux.Get("/subscription/entitlements", authMiddleware.ThenFunc(app.subscriptionHandler.GetEntitlements))
	mux.Post("/subscription/checkout", authMiddleware.ThenFunc(app.subscriptionHandler.CreateCheckoutSession))
	mux.Post("/subscription/portal", authMiddleware.ThenFunc(app.subscriptionHandler.CreatePortalSession))
	mux.Post("/stripe/webhook", standardMiddleware.ThenFunc(app.webhookHandler.HandleWebhook))

	// Notifications
	mux.Post("/fcm/token", authMiddleware.ThenFunc(app.fcmHandler.RegisterToken))
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	return mux
}
