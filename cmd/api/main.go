// @title                       9RIB Marketplace API
// @version                     1.0
// @description                 Artisan directory and application review backend for the 9RIB marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/9rib/marketplace-api/internal/api"
	"github.com/9rib/marketplace-api/internal/core/ports"
	"github.com/9rib/marketplace-api/internal/core/service"
	"github.com/9rib/marketplace-api/internal/infrastructure/config"
	"github.com/9rib/marketplace-api/internal/infrastructure/db/mongo"
	"github.com/9rib/marketplace-api/internal/infrastructure/db/redis"
	"github.com/9rib/marketplace-api/internal/infrastructure/db/sqlstore"
	"github.com/9rib/marketplace-api/internal/infrastructure/mail"
	"github.com/9rib/marketplace-api/internal/infrastructure/queue"
	"github.com/9rib/marketplace-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Relational store (required) ---
	db, err := sqlstore.Connect(cfg.Database.URL, cfg.LogLevel == "debug")
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := sqlstore.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if err := sqlstore.SeedReference(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed reference data")
	}

	profiles := sqlstore.NewProfileRepository(db)
	applications := sqlstore.NewApplicationRepository(db)
	artisans := sqlstore.NewArtisanRepository(db)
	references := sqlstore.NewReferenceRepository(db)
	notifications := sqlstore.NewNotificationRepository(db)
	contacts := sqlstore.NewContactRepository(db)
	tx := sqlstore.NewTransactor(db)

	// --- Audit store (optional) ---
	var (
		mongoClient *mongodriver.Client
		mongoDB     *mongodriver.Database
		events      ports.ApplicationEventRepository
	)
	mongoClient, mongoDB, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Warn().Err(err).Msg("mongo unavailable, application audit disabled")
		mongoClient, mongoDB = nil, nil
	} else {
		repo := mongo.NewApplicationEventRepository(mongoDB)
		if ix, ok := repo.(*mongo.ApplicationEventRepository); ok {
			if err := ix.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("ensure audit indexes")
			}
		}
		events = repo
	}

	// --- Cache and view dedup (optional) ---
	var (
		rdb   *goredis.Client
		dedup service.ViewDeduplicator
		cache service.ReferenceCache
	)
	rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, view dedup and reference cache disabled")
		rdb = nil
	} else {
		dedup = redis.NewViewDedup(rdb, cfg.Redis.ViewDedupWindow)
		cache = redis.NewJSONCache(rdb, cfg.Redis.ReferenceCacheTTL)
	}

	// --- Email (optional) ---
	var mailer service.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Info().Msg("SMTP_HOST not set, email delivery disabled")
	}

	// --- Services ---
	notificationService := service.NewNotificationService(notifications, profiles, mailer, logger.Component("notifications"))

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationService, logger.Component("dispatcher"))
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	referenceService := service.NewReferenceService(references, cache, logger.Component("reference"))
	if err := referenceService.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("reference cache not refreshed after seeding")
	}

	services := api.Services{
		Auth:          service.NewAuthService(profiles, cfg.JWTSecret, cfg.TokenTTL),
		Profiles:      service.NewProfileService(profiles),
		Applications:  service.NewApplicationService(applications, profiles, tx, events, dispatcher, logger.Component("applications")),
		Artisans:      service.NewArtisanService(artisans, profiles, dedup, logger.Component("artisans")),
		References:    referenceService,
		Notifications: notificationService,
		Contact:       service.NewContactService(contacts, logger.Component("contact")),
	}

	e := api.NewRouter(services, api.Stores{SQL: db, Mongo: mongoDB, Redis: rdb}, cfg.JWTSecret, logger.Component("http"))

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	cancelWorkers()
	dispatcher.Wait()

	closeStores(shutCtx, log, db, mongoClient, rdb)
	log.Info().Msg("server stopped")
}

func closeStores(ctx context.Context, log zerolog.Logger, db *gorm.DB, mc *mongodriver.Client, rdb *goredis.Client) {
	if err := sqlstore.Close(db); err != nil {
		log.Error().Err(err).Msg("database close")
	}
	if mc != nil {
		if err := mc.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
}
