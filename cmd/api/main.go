package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-reservations/internal/audit"
	"github.com/BruksfildServices01/restaurant-reservations/internal/config"
	dbpkg "github.com/BruksfildServices01/restaurant-reservations/internal/db"
	"github.com/BruksfildServices01/restaurant-reservations/internal/events"
	infraRepo "github.com/BruksfildServices01/restaurant-reservations/internal/infra/repository"
	"github.com/BruksfildServices01/restaurant-reservations/internal/logger"
	"github.com/BruksfildServices01/restaurant-reservations/internal/middleware"
	"github.com/BruksfildServices01/restaurant-reservations/internal/routes"
	"github.com/BruksfildServices01/restaurant-reservations/internal/session"
	"github.com/BruksfildServices01/restaurant-reservations/internal/storage"
	"github.com/BruksfildServices01/restaurant-reservations/internal/timezone"
	ucReservation "github.com/BruksfildServices01/restaurant-reservations/internal/usecase/reservation"
	"github.com/BruksfildServices01/restaurant-reservations/internal/validators"
)

func main() {

	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.GetLogger()

	if !timezone.IsValid(cfg.RestaurantTimezone) {
		log.Warnw("unknown restaurant timezone, using default",
			"timezone", cfg.RestaurantTimezone,
			"default", timezone.DefaultTimezone,
		)
	}

	deps := routes.Deps{
		Config: cfg,
		Options: ucReservation.Options{
			StoreTimeout: cfg.StoreTimeout,
			Now:          timezone.Clock(cfg.RestaurantTimezone),
		},
	}
	if cfg.CheckEmailDomain {
		deps.Options.EmailDomainCheck = validators.IsEmailDomainValid
	}

	// ======================================================
	// RECORD STORE
	// ======================================================
	var sinks []audit.Sink

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		deps.Reservations = infraRepo.NewReservationMemoryRepository()
		deps.Menu = infraRepo.NewMenuMemoryRepository()

	case config.StoreDriverPostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			log.Fatalw("database unavailable", "error", err)
		}
		deps.DB = db
		deps.Reservations = infraRepo.NewReservationGormRepository(db)
		deps.Menu = infraRepo.NewMenuGormRepository(db)
		sinks = append(sinks, audit.New(db))

	default:
		log.Fatalw("unknown STORE_DRIVER", "driver", cfg.StoreDriver)
	}

	// ======================================================
	// EVENTS
	// ======================================================
	if cfg.AMQPUrl != "" {
		publisher, err := events.Dial(cfg.AMQPUrl)
		if err != nil {
			log.Fatalw("amqp unavailable", "error", err)
		}
		defer publisher.Close()
		sinks = append(sinks, publisher)
		log.Infow("publishing reservation events", "exchange", events.Exchange)
	}

	dispatcher := audit.NewDispatcher(sinks...)
	deps.Audit = dispatcher

	// ======================================================
	// SESSIONS
	// ======================================================
	if cfg.RedisAddr != "" {
		store := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := store.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatalw("redis unavailable", "addr", cfg.RedisAddr, "error", err)
		}

		defer store.Close()
		deps.Sessions = store
	} else {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory")
		deps.Sessions = session.NewMemoryStore()
	}

	// ======================================================
	// IMAGES
	// ======================================================
	if cfg.S3.Enabled() {
		deps.Images = storage.NewS3Store(cfg.S3)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}

	dispatcher.Close()
}
