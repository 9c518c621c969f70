package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/febriandika/postfolio/internal/common"
	"github.com/febriandika/postfolio/internal/notifyservice"
	"github.com/febriandika/postfolio/internal/pageservice"
	"github.com/febriandika/postfolio/internal/postservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	postService   *postservice.PostService
	pageService   *pageservice.PageService
	notifyService *notifyservice.NotifyService
	broker        *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	// Setup the exchange, queue, and binding key
	err = common.SetupPostExchange(broker)
	if err != nil {
		logger.Error("failed to setup the post exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the services
	postService := postservice.NewPostService(db, broker, logger)
	pageCache := common.NewCache(0, 0)
	pageService := pageservice.NewPageService(postService, pageCache, logger, time.Duration(cfg.PageRevalidateSeconds)*time.Second)

	app := &application{
		config:        cfg,
		logger:        logger,
		postService:   postService,
		pageService:   pageService,
		notifyService: notifyservice.NewNotifyService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailRecipient, cfg.MailPort, logger),
		broker:        broker,
	}

	// Start the notification consumer
	app.notifyService.SendPostPublishedEmail()
	defer app.notifyService.Close()

	// Pre-generate the pages known at startup
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = app.pageService.Prime(ctx)
	cancel()
	if err != nil {
		logger.Error("failed to pre-generate pages", slog.String("error", err.Error()))
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
