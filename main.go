package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"salesnav/config"
	"salesnav/cron"
	"salesnav/database"
	"salesnav/database/repository"
	"salesnav/handlers"
	"salesnav/middleware"
	"salesnav/models"
	"salesnav/routes"
	"salesnav/services/checkout"
	"salesnav/services/copywriter"
	"salesnav/services/crm"
	"salesnav/services/discovery"
	"salesnav/services/notification"
	"salesnav/services/onboarding"
	"salesnav/services/payment"
	"salesnav/services/pricing"
	"salesnav/services/proposal"
	"salesnav/services/storage"
	"salesnav/utils"
)

const (
	guardTTL       = 24 * time.Hour
	stripeTimeout  = 30 * time.Second
	healthInterval = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Session state and the duplicate-submission guard live in Redis. Outside
	// production a missing Redis falls back to process memory.
	var (
		store       discovery.SessionStore
		guard       checkout.Guard
		redisHealth []*redis.Client
	)
	sessionRedis, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisSessionDB)
	switch {
	case err == nil:
		store = discovery.NewRedisStore(sessionRedis, cfg.SessionTTL)
		guard = checkout.NewRedisGuard(sessionRedis, guardTTL)
		redisHealth = append(redisHealth, sessionRedis)
		defer sessionRedis.Close()
	case cfg.IsProduction():
		logger.Fatal("main: redis is required in production", zap.Error(err))
	default:
		logger.Warn("main: redis unavailable, using in-memory sessions without a duplicate guard", zap.Error(err))
		store = discovery.NewMemoryStore()
	}

	// The checkout audit log is optional.
	var (
		audit       checkout.AuditLog
		checkouts   repository.CheckoutRepository
		mongoClient *mongo.Client
	)
	mongoClient, err = database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("main: mongo unavailable, checkout audit log disabled", zap.Error(err))
	} else {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
		repo, err := repository.NewMongoCheckoutRepo(mongoClient.Database(cfg.DatabaseName))
		if err != nil {
			logger.Warn("main: failed to create checkout indexes", zap.Error(err))
		}
		audit, checkouts = repo, repo
	}
	utils.StartHealthMonitor(ctx, healthInterval, redisHealth, mongoClient)

	gateway, err := payment.NewStripeGateway(cfg.StripeSecretKey, "", stripeTimeout, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize payment gateway", zap.Error(err))
	}
	if cfg.GHLAPIKey == "" {
		logger.Warn("main: GHL_API_KEY is empty, CRM steps will fail and be skipped")
	}
	crmClient := crm.NewRESTClient(cfg.GHLBaseURL, cfg.GHLAPIKey, cfg.GHLAPIVersion, cfg.GHLTimeout, logger)

	crmNotifier, err := notification.NewCRMNotificationService(crmClient, cfg.GHLLocationID,
		notification.SalesTeam{Email: cfg.SalesTeamEmail, Name: cfg.SalesTeamName}, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize notifications", zap.Error(err))
	}
	var notifier notification.NotificationService = crmNotifier
	if cfg.NotifyAsync {
		queueOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
		queue := asynq.NewClient(queueOpt)
		defer queue.Close()
		notifier = notification.NewQueuedNotificationService(queue, logger)

		worker := cron.NewNotificationWorker(queueOpt, crmNotifier, logger)
		if err := worker.Start(); err != nil {
			logger.Fatal("main: notification worker", zap.Error(err))
		}
		defer worker.Shutdown()
	}

	orchestrator, err := checkout.NewOrchestrator(gateway, crmClient, notifier, guard, audit, checkout.Settings{
		Currency:   cfg.Currency,
		LocationID: cfg.GHLLocationID,
		PipelineID: cfg.GHLOnboardingPipelineID,
		StageID:    cfg.GHLPaidInvoiceStageID,
		Business: models.BusinessDetails{
			Name:    cfg.BusinessName,
			Phone:   cfg.BusinessPhone,
			Address: cfg.BusinessAddress,
			Website: cfg.BusinessWebsite,
		},
	}, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize checkout", zap.Error(err))
	}

	var signatures storage.StorageService
	if cloudinary, err := storage.NewCloudinaryStorageService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret, cfg.CloudinaryFolder, logger); err != nil {
		logger.Warn("main: signature storage disabled", zap.Error(err))
	} else {
		signatures = cloudinary
	}

	discoveryService, err := discovery.NewDefaultDiscoveryService(store, signatures, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize discovery", zap.Error(err))
	}
	onboardingService, err := onboarding.NewDefaultOnboardingService(store, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize onboarding", zap.Error(err))
	}

	var generator copywriter.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := copywriter.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("main: email generation disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}

	proposalService, err := proposal.NewDefaultProposalService(store,
		pricing.NewCalculator(cfg.TaxRate, cfg.MaxDiscountPercent),
		signatures, orchestrator, copywriter.NewWriter(generator, logger), logger)
	if err != nil {
		logger.Fatal("main: failed to initialize proposals", zap.Error(err))
	}

	handlerBundle := &handlers.HandlerBundle{
		Payment:      handlers.NewPaymentHandler(orchestrator),
		Discovery:    handlers.NewDiscoveryHandler(discoveryService),
		Proposal:     handlers.NewProposalHandler(proposalService),
		Onboarding:   handlers.NewOnboardingHandler(onboardingService),
		Admin:        handlers.NewAdminHandler(checkouts, cfg.AdminEmail, cfg.AdminPasswordHash, []byte(cfg.JWTSecret)),
		Health:       handlers.HealthHandler,
		Dependencies: handlers.DependenciesHandler,
		AdminSecret:  []byte(cfg.JWTSecret),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
