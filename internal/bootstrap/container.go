package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-reportgen-be/internal/config"
	"ai-reportgen-be/internal/controller"
	"ai-reportgen-be/internal/handler"
	"ai-reportgen-be/internal/pkg/logger"
	"ai-reportgen-be/internal/pkg/mailer"
	"ai-reportgen-be/internal/pkg/serverutils"
	"ai-reportgen-be/internal/repository/implementation"
	"ai-reportgen-be/internal/repository/memory"
	"ai-reportgen-be/internal/repository/unitofwork"
	"ai-reportgen-be/internal/service"
	"ai-reportgen-be/internal/websocket"
	"ai-reportgen-be/pkg/admin/dashboard"
	adminEvents "ai-reportgen-be/pkg/admin/events"
	"ai-reportgen-be/pkg/admin/feature"
	"ai-reportgen-be/pkg/admin/genconfig"
	"ai-reportgen-be/pkg/admin/plan"
	"ai-reportgen-be/pkg/admin/refund"
	"ai-reportgen-be/pkg/admin/subscription"
	"ai-reportgen-be/pkg/admin/usage"
	"ai-reportgen-be/pkg/admin/user"
	"ai-reportgen-be/pkg/markdown"

	pktNats "ai-reportgen-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DatasetController  controller.IDatasetController
	DocumentController controller.IDocumentController
	UserController     controller.IUserController
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	AdminController    controller.IAdminController
	PaymentController  controller.IPaymentController
	PlanController     controller.PlanController

	// Route guards for the expensive operations
	GenerationLimiter fiber.Handler
	ExportLimiter     fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process, carries the preview re-render jobs)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// One renderer instance serves every editing session; it is stateless
	// apart from its parser/sanitizer pipelines.
	renderer := markdown.NewRenderer()

	// In-memory arena for open editing sessions
	sessionRepo := memory.NewSessionRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil // rate limiting fails open, websocket fan-out stays local
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.RenderTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.RenderTopic,
		sessionRepo,
	)

	userService := service.NewUserService(uowFactory, natsPub)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, natsPub)
	planService := service.NewPlanService(uowFactory)

	datasetService := service.NewDatasetService(uowFactory, planService)
	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		planService,
		sessionRepo,
		renderer,
	)
	generationService := service.NewGenerationService(
		uowFactory,
		planService,
		sessionRepo,
		renderer,
		natsPub,
		cfg.Ai,
		cfg.Keys,
	)
	exportService := service.NewExportService(
		uowFactory,
		documentService,
		natsPub,
		cfg.App.ExportDir,
		cfg.App.BaseURL,
	)

	// Admin Domain Components
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	userManager := user.NewManager(sysLogger, adminEventPublisher)
	subscriptionManager := subscription.NewManager(sysLogger)
	planManager := plan.NewManager()
	featureManager := feature.NewManager()
	refundProcessor := refund.NewProcessor(sysLogger, adminEventPublisher)
	usageTracker := usage.NewTracker(sysLogger, adminEventPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)
	genConfigManager := genconfig.NewManager()

	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		userManager,
		subscriptionManager,
		planManager,
		featureManager,
		refundProcessor,
		usageTracker,
		dashboardAggregator,
		adminEventPublisher,
		genConfigManager,
	)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Route guards
	window := time.Duration(cfg.App.RateLimitWindowSecs) * time.Second
	generationLimiter := serverutils.RateLimitMiddleware(rdb, "generation", cfg.App.RateLimitRequests, window)
	exportLimiter := serverutils.RateLimitMiddleware(rdb, "export", cfg.App.RateLimitRequests, window)

	// 5. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		DatasetController:   controller.NewDatasetController(datasetService),
		DocumentController:  controller.NewDocumentController(documentService, generationService, exportService),
		UserController:      controller.NewUserController(userService),
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		AdminController:     controller.NewAdminController(adminService, authService),
		PaymentController:   controller.NewPaymentController(paymentService),
		PlanController:      controller.NewPlanController(planService),

		GenerationLimiter: generationLimiter,
		ExportLimiter:     exportLimiter,

		ConsumerService: consumerService,
	}
}
