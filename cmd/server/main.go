package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/api"
	"github.com/DivyanshSaharan/ContestTrack/internal/cache"
	"github.com/DivyanshSaharan/ContestTrack/internal/config"
	"github.com/DivyanshSaharan/ContestTrack/internal/fetcher"
	"github.com/DivyanshSaharan/ContestTrack/internal/notification"
	"github.com/DivyanshSaharan/ContestTrack/internal/ratelimit"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.App.Environment == "development" {
		log.Printf("Config loaded:\n%s", cfg.SafeString())
	}

	db, err := repository.InitDatabase(cfg.Database, cfg.App)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("Database initialized")

	defer func() {
		if err := repository.CloseDatabase(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migrated")

	userRepo := repository.NewUserRepository(db)
	contestRepo := repository.NewContestRepository(db)
	notifPrefsRepo := repository.NewNotificationPreferenceRepository(db)
	contestPrefsRepo := repository.NewContestPreferenceRepository(db)
	reminderRepo := repository.NewContestReminderRepository(db)

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Redis not available, serving contest queries from the database: %v", err)
	}
	if redisClient != nil {
		defer cache.CloseRedisClient(redisClient)
		log.Println("Redis connected")
	}
	contestCache := cache.New(redisClient, time.Minute)

	// One bucket shared by all fetchers keeps the total outbound request
	// rate against the contest APIs bounded.
	sourceLimiter := ratelimit.NewRateLimiter(10, time.Second)

	aggregator := fetcher.NewAggregator()
	aggregator.Register(fetcher.NewCodeforcesFetcher(cfg.Sources, sourceLimiter))
	aggregator.Register(fetcher.NewCodechefFetcher(cfg.Sources, sourceLimiter))
	aggregator.Register(fetcher.NewLeetcodeFetcher(cfg.Sources, sourceLimiter))

	importer := fetcher.NewImporter(aggregator, contestRepo)
	importScheduler := fetcher.NewScheduler(importer)
	if err := importScheduler.Start(); err != nil {
		log.Fatalf("Failed to start import scheduler: %v", err)
	}

	log.Println("Running initial contest import...")
	if err := importScheduler.RunNow(context.Background()); err != nil {
		log.Printf("Initial import failed (will retry on the hourly schedule): %v", err)
	}

	mailer := notification.NewSMTPMailer(cfg.Mail)
	notifService := notification.NewService(contestRepo, userRepo, notifPrefsRepo, reminderRepo, mailer)
	notifScheduler := notification.NewScheduler(notifService)
	if err := notifScheduler.Start(); err != nil {
		log.Fatalf("Failed to start notification scheduler: %v", err)
	}

	server := api.NewServer(
		cfg,
		userRepo,
		contestRepo,
		notifPrefsRepo,
		contestPrefsRepo,
		reminderRepo,
		contestCache,
		importScheduler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Println("ContestTrack started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	importScheduler.Stop()
	notifScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
