package cmd

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"event-solution/config"
	"event-solution/internal/artifact"
	"event-solution/internal/handlers"
	"event-solution/internal/message"
	"event-solution/internal/notify"
	"event-solution/internal/services"
	"event-solution/internal/services/gateway"
	"event-solution/internal/services/gateway/esewa"
	"event-solution/internal/services/gateway/khalti"
	"event-solution/internal/store"
	"event-solution/monitoring"
	"event-solution/security"
	"event-solution/utils"
	_ "event-solution/migrations"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	logger := slog.Default()

	// Initialize Redis (submission rate limiter + health check)
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Payment gateways
	registry := gateway.NewRegistry(gateway.NewFactory())
	if err := registry.Register(ctx, gateway.ProviderKhalti, &khalti.Config{
		BaseURL:   cfg.KhaltiBaseURL,
		SecretKey: cfg.KhaltiSecretKey,
		ReturnURL: cfg.KhaltiReturnURL,
		SiteURL:   cfg.KhaltiSiteURL,
		Timeout:   cfg.GatewayTimeout,
	}); err != nil {
		return err
	}
	if err := registry.Register(ctx, gateway.ProviderEsewa, &esewa.Config{
		BaseURL:      cfg.EsewaBaseURL,
		MerchantCode: cfg.EsewaMerchantCode,
		SecretKey:    cfg.EsewaSecretKey,
		SuccessURL:   cfg.EsewaSuccessURL,
		FailureURL:   cfg.EsewaFailureURL,
		Timeout:      cfg.GatewayTimeout,
	}); err != nil {
		return err
	}
	defer registry.Close(ctx)

	// Stores and collaborators
	requestStore := store.NewRequestStore(app)
	eventStore := store.NewEventStore(app)
	renderer := artifact.NewImageRenderer()
	notifier := notify.NewMailNotifier(app, cfg.SenderName, cfg.SenderAddress)

	// In-process delivery bus
	wmLogger := watermill.NewStdLogger(false, false)
	pubSub := message.NewPubSub(wmLogger)
	publisher, err := message.NewPublisher(pubSub, wmLogger)
	if err != nil {
		return err
	}

	deliverer := message.NewDeliverer(requestStore, eventStore, renderer, notifier, logger)
	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:    wmLogger,
		PubSub:    pubSub,
		Deliverer: deliverer,
	})
	if err != nil {
		return err
	}

	go func() {
		if err := msgRouter.Run(ctx); err != nil {
			logger.Error("message router stopped", "error", err)
		}
	}()

	// Initialize services
	ticketService := services.NewTicketService(requestStore, eventStore, registry, publisher, logger)

	// Initialize handlers
	ticketHandler := handlers.NewTicketHandler(ticketService)
	callbackHandler := handlers.NewCallbackHandler(ticketService, logger)
	limiter := security.NewRateLimiter(redisClient, cfg.SubmissionRateLimit)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Metrics
	if cfg.EnableMetrics {
		monitoring.Serve(cfg.MetricsPort)
	}

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Ticket request endpoints
		e.Router.POST("/api/v1/ticket-requests", limiter.Limit(ticketHandler.Submit))
		e.Router.GET("/api/v1/ticket-requests", ticketHandler.List)
		e.Router.PATCH("/api/v1/ticket-requests/{id}/status", ticketHandler.UpdateStatus)
		e.Router.DELETE("/api/v1/ticket-requests/{id}", ticketHandler.Delete)

		// Payment callback endpoint
		e.Router.GET("/api/v1/payment/callback/{provider}", callbackHandler.HandleReturn)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
