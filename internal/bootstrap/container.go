package bootstrap

import (
	"context"
	"log"

	"customs-evidence-be/internal/config"
	"customs-evidence-be/internal/controller"
	"customs-evidence-be/internal/handler"
	"customs-evidence-be/internal/pkg/logger"
	"customs-evidence-be/internal/repository/unitofwork"
	"customs-evidence-be/internal/service"
	"customs-evidence-be/internal/websocket"
	"customs-evidence-be/pkg/events"
	pktNats "customs-evidence-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	EvidenceController  controller.IEvidenceController
	IngestionController controller.IIngestionController
	DecisionController  controller.IDecisionController
	TenantController    controller.ITenantController
	OpsController       controller.IOpsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	RunStreamHandler *handler.RunStreamHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

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
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/run_stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Audit trail: every bus event lands in its own structured log file.
	if natsSub != nil {
		auditLogger := logger.NewIsolatedLogger("logs/events.log")
		err := natsSub.Subscribe("evidence.>", "evidence-audit", func(ctx context.Context, event events.Event) error {
			auditLogger.Info("EventAudit", event.EventType(), event.Payload())
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to start event audit subscriber: %v", err)
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Indexing.SweepTopic)

	tenantService := service.NewTenantService(uowFactory)
	ingestionService := service.NewIngestionService(uowFactory, publisherService, natsPub, wsHub, sysLogger)
	indexingService := service.NewIndexingService(uowFactory, tenantService, sysLogger)
	retrievalService := service.NewRetrievalService(uowFactory, tenantService, ingestionService, sysLogger)
	decisionService := service.NewDecisionService(uowFactory, natsPub, sysLogger)

	consumerService := service.NewConsumerService(pubSub, cfg.Indexing.SweepTopic, indexingService)

	// 4. Controllers
	return &Container{
		EvidenceController:  controller.NewEvidenceController(retrievalService),
		IngestionController: controller.NewIngestionController(ingestionService, indexingService),
		DecisionController:  controller.NewDecisionController(decisionService),
		TenantController:    controller.NewTenantController(tenantService),
		OpsController:       controller.NewOpsController(sysLogger),

		ConsumerService: consumerService,

		RunStreamHandler: handler.NewRunStreamHandler(wsHub, wsLogger),
		WebSocketHub:     wsHub,
	}
}
