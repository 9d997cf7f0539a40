package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"roombooker/internal/booking"
	"roombooker/internal/config"
	"roombooker/internal/http-server/handlers/booking/availableSlots"
	"roombooker/internal/http-server/handlers/booking/cancelBooking"
	"roombooker/internal/http-server/handlers/booking/checkIn"
	"roombooker/internal/http-server/handlers/booking/createBooking"
	"roombooker/internal/http-server/handlers/booking/getBooking"
	"roombooker/internal/http-server/handlers/booking/listBookings"
	"roombooker/internal/http-server/handlers/booking/processBooking"
	"roombooker/internal/http-server/handlers/booking/roomSchedule"
	"roombooker/internal/http-server/handlers/room/createRoom"
	"roombooker/internal/http-server/middleware/mwauth"
	"roombooker/internal/http-server/middleware/mwlogger"
	"roombooker/internal/http-server/middleware/ratelimit"
	"roombooker/internal/lib/logger/handlers/slogpretty"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/metrics"
	"roombooker/internal/models"
	"roombooker/internal/notify/kafka"
	"roombooker/internal/notify/mail"
	"roombooker/internal/storage/memory"
	"roombooker/internal/storage/postgres"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting room booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := setupStorage(ctx, log, &cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	policy, err := booking.NewPolicy(cfg.Booking)
	if err != nil {
		log.Error("invalid booking policy", sl.Err(err))
		os.Exit(1)
	}

	sender := mail.New(log, cfg.SMTP)
	if !sender.Enabled() {
		log.Warn("smtp is not configured, notifications will only be logged")
	}

	var opts []booking.Option

	var publisher *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = kafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to init kafka publisher", sl.Err(err))
			os.Exit(1)
		}
		opts = append(opts, booking.WithPublisher(publisher))
		log.Info("publishing booking events", slog.String("topic", cfg.Kafka.Topic))
	}

	engine := booking.New(log, store, sender, policy, opts...)

	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis is unreachable, check-in rate limiting fails open", sl.Err(err))
		}
		cancelPing()
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Handle("/metrics", metrics.Handler())

	router.Route("/rooms", func(r chi.Router) {
		r.With(mwauth.New(log), mwauth.RequireRole(models.RoleAdmin)).Post("/", createRoom.New(log, engine))

		r.Get("/{id}/schedule", roomSchedule.New(log, engine, policy.Location))
		r.Get("/{id}/slots", availableSlots.New(log, engine, policy.Location, policy.ShowBlockedSlots))
	})

	router.Route("/bookings", func(r chi.Router) {
		r.Use(mwauth.New(log))

		r.Post("/", createBooking.New(log, engine))
		r.Get("/", listBookings.New(log, engine, false))

		if rdb != nil {
			limit := ratelimit.New(log, rdb, "checkin", cfg.RateLimit.Requests, cfg.RateLimit.Window)
			r.With(limit).Post("/checkin", checkIn.New(log, engine))
		} else {
			r.Post("/checkin", checkIn.New(log, engine))
		}

		r.Route("/manage", func(r chi.Router) {
			r.Use(mwauth.RequireRole(models.RoleAdmin))

			r.Get("/", listBookings.New(log, engine, true))
			r.Post("/{id}/process", processBooking.New(log, engine))
		})

		r.Get("/{id}", getBooking.New(log, engine))
		r.Post("/{id}/cancel", cancelBooking.New(log, engine))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	sweepEvery := cfg.Booking.CompletionInterval
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}

	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := engine.CompleteElapsed(ctx); err != nil {
					log.Error("failed to complete elapsed bookings", sl.Err(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	engine.Wait()

	log.Info("application stopped")

	if publisher != nil {
		if err = publisher.Close(); err != nil {
			log.Error("failed to close kafka publisher", sl.Err(err))
		}
	}

	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis client", sl.Err(err))
		}
	}

	if err = closeStore(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(ctx context.Context, log *slog.Logger, cfg *config.Database) (booking.IntervalStore, func() error, error) {
	switch cfg.Driver {
	case "memory":
		store := memory.New()

		// The in-memory store starts empty; give local runs something to book.
		demo := models.Room{
			ID:        "room-demo",
			Code:      "DEMO-101",
			Name:      "Demo Room 101",
			Capacity:  40,
			Status:    models.RoomAvailable,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := store.SaveRoom(ctx, demo); err != nil {
			return nil, nil, err
		}

		log.Info("using in-memory storage", slog.String("demo_room", demo.ID))

		return store, func() error { return nil }, nil
	case "postgres":
		store, err := postgres.InitDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}

		log.Info("using postgres storage", slog.String("host", cfg.Host), slog.String("dbname", cfg.DBName))

		return store, store.Close, nil
	default:
		return nil, nil, errors.New("unknown storage driver " + cfg.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
