package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"servioBack/internal/config"
	"servioBack/internal/geo"
	"servioBack/internal/handlers"
	"servioBack/internal/matching"
	"servioBack/internal/repositories"
	"servioBack/internal/services"
	"servioBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	userRepo            *repositories.UserRepository
	subscriptionService *services.SubscriptionService
	wsManager           *WebSocketManager

	userHandler         *handlers.UserHandler
	catalogHandler      *handlers.CatalogHandler
	quoteHandler        *handlers.QuoteHandler
	matchHandler        *handlers.MatchHandler
	ratingHandler       *handlers.RatingHandler
	subscriptionHandler *handlers.SubscriptionHandler
	webhookHandler      *handlers.StripeWebhookHandler
	fcmHandler          *handlers.FCMHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, msgClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	catalogRepo := repositories.CatalogRepository{DB: db}
	providerRepo := repositories.ProviderRepository{DB: db}
	ratingRepo := repositories.RatingRepository{DB: db}
	quoteRepo := repositories.QuoteRepository{DB: db, ErrorLog: errorLog}
	subscriptionRepo := repositories.SubscriptionRepository{DB: db}
	draftStore := repositories.DraftStore{Redis: rdb}
	planCache := repositories.PlanCache{Redis: rdb, TTL: 10 * time.Minute}

	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "dev-signing-key"
	}
	tokenManager, err := utils.NewManager(signingKey)
	if err != nil {
		errorLog.Fatal(err)
	}

	geocoder := geo.NewGeocoder(&http.Client{}, cfg.Geocoder.APIKey, cfg.Geocoder.RegionID)

	matcher := &matching.Matcher{
		Providers: &providerRepo,
		Prices:    &providerRepo,
		Ratings:   &ratingRepo,
		Geo:       geocoder,
		ErrorLog:  errorLog,
	}

	wsManager := NewWebSocketManager()

	// Services
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager}
	catalogService := &services.CatalogService{CatalogRepo: &catalogRepo}
	quoteService := &services.QuoteService{QuoteRepo: &quoteRepo, Drafts: &draftStore, Notifier: wsManager}
	subscriptionService := &services.SubscriptionService{Store: &subscriptionRepo, Cache: &planCache, ErrorLog: errorLog}
	matchService := &services.MatchService{Matcher: matcher, Subscription: subscriptionService}
	ratingService := &services.RatingService{RatingRepo: &ratingRepo, QuoteRepo: &quoteRepo}

	fcmHandler := handlers.NewFCMHandler(msgClient, userService, errorLog)

	billingService := &services.BillingService{
		Subscriptions: &subscriptionRepo,
		Users:         &userRepo,
		Notifier:      wsManager,
		ErrorLog:      errorLog,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURL:     cfg.Stripe.CancelURL,
		ReturnURL:     cfg.Stripe.PortalURL,
	}
	if msgClient != nil {
		billingService.Push = fcmHandler
	}

	var storage *utils.Storage
	if cfg.Storage.Bucket != "" {
		storage, err = utils.NewStorage(utils.StorageConfig{
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			errorLog.Printf("photo storage disabled: %v", err)
			storage = nil
		}
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	catalogHandler := &handlers.CatalogHandler{Service: catalogService}
	quoteHandler := &handlers.QuoteHandler{Service: quoteService, Storage: storage}
	matchHandler := &handlers.MatchHandler{Service: matchService}
	ratingHandler := &handlers.RatingHandler{Service: ratingService}
	subscriptionHandler := &handlers.SubscriptionHandler{
		Service: subscriptionService,
		Billing: billingService,
		Users:   userService,
	}
	webhookHandler := &handlers.StripeWebhookHandler{
		Billing:       billingService,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		ErrorLog:      errorLog,
	}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		db:                  db,
		userRepo:            &userRepo,
		subscriptionService: subscriptionService,
		wsManager:           wsManager,
		userHandler:         userHandler,
		catalogHandler:      catalogHandler,
		quoteHandler:        quoteHandler,
		matchHandler:        matchHandler,
		ratingHandler:       ratingHandler,
		subscriptionHandler: subscriptionHandler,
		webhookHandler:      webhookHandler,
		fcmHandler:          fcmHandler,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
