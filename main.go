package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicdesk/config"
	"clinicdesk/cron"
	"clinicdesk/database"
	appointmentRepo "clinicdesk/database/repository/appointment"
	contentRepo "clinicdesk/database/repository/content"
	deliveryRepo "clinicdesk/database/repository/delivery"
	"clinicdesk/handlers"
	"clinicdesk/middleware"
	"clinicdesk/models"
	"clinicdesk/routes"
	"clinicdesk/services/appointment"
	"clinicdesk/services/content"
	"clinicdesk/services/messaging"
	"clinicdesk/services/notification"
	"clinicdesk/services/storage"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// stores groups the repositories of the selected backend.
type stores struct {
	appointments appointmentRepo.Store
	content      content.Repositories
	deliveries   deliveryRepo.DeliveryRepository
	ping         utils.Pinger
	close        func(ctx context.Context)
}

func openStores() stores {
	if config.UsesMongo() {
		database.InitDB()
		db := database.MongoDatabase()
		return stores{
			appointments: appointmentRepo.NewMongoAppointmentRepo(db),
			content: content.Repositories{
				Services:     contentRepo.NewMongoContentRepo[models.Service](db, contentRepo.ServicesCollection),
				Testimonials: contentRepo.NewMongoContentRepo[models.Testimonial](db, contentRepo.TestimonialsCollection),
				BlogPosts:    contentRepo.NewMongoContentRepo[models.BlogPost](db, contentRepo.BlogPostsCollection),
				Settings:     contentRepo.NewMongoSettingsRepo(db),
			},
			deliveries: deliveryRepo.NewMongoDeliveryRepo(db),
			ping:       database.PingMongo,
			close:      database.CloseDB,
		}
	}

	database.InitFirestore(utils.FirebaseApp)
	client := database.FirestoreClient
	return stores{
		appointments: appointmentRepo.NewFirestoreAppointmentRepo(client),
		content: content.Repositories{
			Services:     contentRepo.NewFirestoreContentRepo[models.Service](client, contentRepo.ServicesCollection),
			Testimonials: contentRepo.NewFirestoreContentRepo[models.Testimonial](client, contentRepo.TestimonialsCollection),
			BlogPosts:    contentRepo.NewFirestoreContentRepo[models.BlogPost](client, contentRepo.BlogPostsCollection),
			Settings:     contentRepo.NewFirestoreSettingsRepo(client),
		},
		deliveries: deliveryRepo.NewFirestoreDeliveryRepo(client),
		ping:       database.PingFirestore,
		close:      func(context.Context) { database.CloseFirestore() },
	}
}

// newSender picks the remote messaging function when configured, otherwise
// the in-process gateway (Twilio when credentials are set, demo mode otherwise).
func newSender(formatter *messaging.Formatter, deliveries deliveryRepo.DeliveryRepository, logger *zap.Logger) (messaging.Sender, *messaging.Gateway) {
	cfg := config.AppConfig

	var client messaging.WhatsAppClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		client = messaging.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	}
	gateway := messaging.NewGateway(client, cfg.TwilioWhatsAppFrom, formatter, deliveries, logger.Named("gateway"))
	if gateway.Demo() {
		logger.Warn("Twilio credentials not configured, WhatsApp gateway runs in demo mode")
	}

	if cfg.MessagingFunctionURL != "" {
		logger.Info("messaging through remote function", zap.String("url", cfg.MessagingFunctionURL))
		return messaging.NewCallableSender(cfg.MessagingFunctionURL, cfg.MessagingSharedSecret), gateway
	}
	return gateway, gateway
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	if err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	st := openStores()

	cache := utils.GetCacheClient()
	redisClients := []*redis.Client{cache}

	// Messaging.
	cfg := config.AppConfig
	formatter := messaging.NewFormatter(cfg.ClinicName, cfg.ClinicPhone, cfg.ClinicTimezone)
	sender, gateway := newSender(formatter, st.deliveries, logger)
	dispatcher := messaging.NewDispatcher(sender, formatter, messaging.DispatcherConfig{
		AdminPhone:  cfg.AdminPhone,
		CountryCode: cfg.DefaultCountryCode,
	}, st.deliveries, logger.Named("dispatcher"))

	var (
		publisher     messaging.Publisher
		shutdownQueue func()
	)
	if cfg.MessagingQueue == "asynq" {
		queueClient := asynq.NewClient(cron.QueueRedisOpt())
		worker := cron.InitMessagingWorker(dispatcher, logger.Named("worker"))
		publisher = cron.NewAsynqPublisher(queueClient, logger.Named("queue"))
		shutdownQueue = func() {
			worker.Shutdown()
			if err := queueClient.Close(); err != nil {
				logger.Warn("main: failed to close queue client", zap.Error(err))
			}
		}
	} else {
		inProcess := messaging.NewInProcessPublisher(dispatcher, logger.Named("publisher"))
		publisher = inProcess
		shutdownQueue = func() {
			inProcess.Close()
			inProcess.Wait()
		}
	}

	// Notifications and live sync.
	hub := notification.NewHub()
	var push notification.PushSender
	if utils.FCMClient != nil {
		push = utils.FCMClient
	}
	notificationService, err := notification.NewDefaultNotificationService(hub, push, cfg.FCMAdminTopic, logger.Named("notification"))
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	liveSync := appointment.NewLiveSync(st.appointments, notificationService, cfg.FreshWindow, logger.Named("livesync"))
	if err := liveSync.Start(rootCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Services.
	appointmentService := appointment.NewDefaultAppointmentService(st.appointments, publisher, logger.Named("appointment"))
	contentService := content.NewContentService(st.content, cache, logger.Named("content"))

	var storageService storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: image uploads disabled", zap.Error(err))
	} else {
		storageService = cld
	}

	var verifier middleware.TokenVerifier
	if utils.AuthClient != nil {
		verifier = utils.AuthClient
	}

	handlerBundle := &handlers.HandlerBundle{
		AdminVerifier:     verifier,
		AdminEmail:        cfg.AdminEmail,
		MessagingSecret:   cfg.MessagingSharedSecret,
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,

		Appointments:  handlers.NewAppointmentHandler(appointmentService, liveSync),
		Notifications: handlers.NewNotificationHandler(hub),
		Services:      handlers.NewContentHandler(contentService.Services),
		Testimonials:  handlers.NewContentHandler(contentService.Testimonials),
		BlogPosts:     handlers.NewContentHandler(contentService.BlogPosts),
		Settings:      handlers.NewSettingsHandler(contentService.Settings),
		Messaging:     handlers.NewMessagingHandler(gateway),
		Storage:       handlers.NewStorageHandler(storageService),
		Deliveries:    handlers.NewDeliveryHandler(st.deliveries),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(rootCtx, redisClients, st.ping)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	liveSync.Stop()
	shutdownQueue()
	cancelRoot()
	st.close(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
