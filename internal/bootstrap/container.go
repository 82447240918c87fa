package bootstrap

import (
	"context"
	"log"
	"time"

	"communityhub-be/internal/config"
	"communityhub-be/internal/controller"
	"communityhub-be/internal/pkg/logger"
	"communityhub-be/internal/pkg/mailer"
	"communityhub-be/internal/pkg/ratelimit"
	"communityhub-be/internal/repository/unitofwork"
	"communityhub-be/internal/service"
	"communityhub-be/pkg/chat/fallback"
	"communityhub-be/pkg/chat/grounding"
	"communityhub-be/pkg/chat/identity"
	"communityhub-be/pkg/chat/responder"
	"communityhub-be/pkg/llm/factory"

	"communityhub-be/internal/constant"
	pktNats "communityhub-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopic = "audit_log"

type Container struct {
	// Controllers
	ChatController        controller.IChatController
	AuthController        controller.IAuthController
	EventController       controller.IEventController
	ResourceController    controller.IResourceController
	PodcastController     controller.IPodcastController
	TestimonialController controller.ITestimonialController
	MediaController       controller.IMediaController

	// Background services, driven from main.go.
	ChatService         service.IChatService
	AuditService        service.IAuditService
	NotificationService *service.NotificationService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. In-process event bus for audit writes
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	auditService := service.NewAuditService(pubSub, auditTopic, uowFactory, sysLogger)

	// 3. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	limiter := ratelimit.NewRedisLimiter(rdb, "chat_rl", cfg.Chat.RateLimitPerMin, sysLogger)

	// 4. AI gateway. A nil provider is a valid deployment; the chat degrades
	// to the fallback pool instead of refusing to start.
	provider := factory.SelectProvider(factory.ProviderConfig{
		GeminiAPIKey:      cfg.Ai.GeminiAPIKey,
		GeminiModel:       cfg.Ai.GeminiModel,
		HuggingFaceAPIKey: cfg.Ai.HuggingFaceAPIKey,
		HuggingFaceModel:  cfg.Ai.HuggingFaceModel,
		OllamaBaseURL:     cfg.Ai.OllamaBaseURL,
		OllamaModel:       cfg.Ai.OllamaModel,
		RequestTimeout:    cfg.Ai.RequestTimeout,
	})
	if provider != nil {
		log.Printf("[INFO] Using AI provider: %s", provider.Name())
	} else {
		log.Printf("[WARN] No AI provider configured, auto mode will serve fallback messages")
	}
	chatResponder := responder.NewResponder(provider, constant.ChatSystemPromptV1)

	// 5. Chat domain components
	contentStore := service.NewContentStore(uowFactory, cfg.Org.Name, cfg.Org.Mission)
	assembler := grounding.NewAssembler(contentStore, sysLogger)
	fallbackPool := fallback.NewPool(constant.ChatFallbackMessages, time.Now().UnixNano())
	hasher := identity.NewHasher(cfg.Chat.IdentitySalt)

	var eventPub service.EventPublisher
	if natsPub != nil {
		eventPub = natsPub
	}

	chatService := service.NewChatService(service.ChatServiceDeps{
		UowFactory:   uowFactory,
		Hasher:       hasher,
		Assembler:    assembler,
		Responder:    chatResponder,
		FallbackPool: fallbackPool,
		Limiter:      limiter,
		EventPub:     eventPub,
		Audit:        auditService,
		Logger:       sysLogger,
		SessionTTL:   cfg.Chat.SessionTTL,
		PollInterval: cfg.Chat.PollInterval,
	})

	// 6. Remaining services
	contentService := service.NewContentService(uowFactory, auditService, sysLogger, cfg.Org.Name, cfg.Org.Mission)
	authService := service.NewAuthService(uowFactory, auditService, cfg.App.JWTSecret)
	oauthService := service.NewOAuthService(uowFactory, authService, cfg.OAuth)
	mediaService := service.NewMediaService(cfg.App.UploadDir, cfg.App.BaseURL, cfg.App.UploadQuotaBytes, auditService, sysLogger)

	alertLogger := logger.NewIsolatedLogger("logs/alerts.log")
	notificationService := service.NewNotificationService(natsSub, emailService, cfg.SMTP.AlertEmail, alertLogger)

	return &Container{
		ChatController:        controller.NewChatController(chatService),
		AuthController:        controller.NewAuthController(authService, oauthService),
		EventController:       controller.NewEventController(contentService),
		ResourceController:    controller.NewResourceController(contentService),
		PodcastController:     controller.NewPodcastController(contentService),
		TestimonialController: controller.NewTestimonialController(contentService),
		MediaController:       controller.NewMediaController(mediaService),

		ChatService:         chatService,
		AuditService:        auditService,
		NotificationService: notificationService,

		Logger: sysLogger,
	}
}
