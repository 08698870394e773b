package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketBooker/internal/booking"
	"ticketBooker/internal/config"
	"ticketBooker/internal/events"
	"ticketBooker/internal/http-server/handlers/booking/cancelBooking"
	"ticketBooker/internal/http-server/handlers/booking/createBooking"
	"ticketBooker/internal/http-server/handlers/booking/getBooking"
	"ticketBooker/internal/http-server/handlers/booking/listBookings"
	"ticketBooker/internal/http-server/handlers/event/createEvent"
	"ticketBooker/internal/http-server/handlers/event/deleteEvent"
	"ticketBooker/internal/http-server/handlers/event/getAllEvents"
	"ticketBooker/internal/http-server/handlers/event/getEventInfo"
	"ticketBooker/internal/http-server/handlers/event/updateEvent"
	"ticketBooker/internal/http-server/middleware/mwidentity"
	"ticketBooker/internal/http-server/middleware/mwlogger"
	"ticketBooker/internal/lib/logger/handlers/slogpretty"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/notify"
	"ticketBooker/internal/storage/memory"
	"ticketBooker/internal/storage/postgres"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	storageMemory   = "memory"
	storagePostgres = "postgres"
)

type store interface {
	booking.Store
	events.Store
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting ticket booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := setupStorage(cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	wmLogger := watermill.NewSlogLogger(log.With(slog.String("component", "notify")))

	pubSub, err := notify.NewPubSub(cfg.Notifier, wmLogger)
	if err != nil {
		log.Error("failed to init notifier", sl.Err(err))
		os.Exit(1)
	}

	msgRouter, err := notify.NewRouter(wmLogger, pubSub.Subscriber, cfg.Notifier.Topic, notify.NewMailer(log))
	if err != nil {
		log.Error("failed to init notification router", sl.Err(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := msgRouter.Run(ctx); err != nil {
			log.Error("notification router stopped", sl.Err(err))
		}
	}()

	bookings := booking.New(log, storage,
		booking.WithNotifier(notify.NewPublisher(pubSub.Publisher, cfg.Notifier.Topic)),
	)
	eventsService := events.New(log, storage)

	router := newRouter(log, bookings, eventsService)

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

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = msgRouter.Close(); err != nil {
		log.Error("failed to close notification router", sl.Err(err))
	}

	if err = pubSub.Close(); err != nil {
		log.Error("failed to close notifier", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func newRouter(log *slog.Logger, bookings *booking.Service, eventsService *events.Service) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/events", getAllEvents.New(log, eventsService))
	router.Get("/events/{id}", getEventInfo.New(log, eventsService))

	router.Group(func(r chi.Router) {
		r.Use(mwidentity.New(log))

		r.Post("/events", createEvent.New(log, eventsService))
		r.Patch("/events/{id}", updateEvent.New(log, eventsService))
		r.Delete("/events/{id}", deleteEvent.New(log, eventsService))

		r.Post("/bookings", createBooking.New(log, bookings))
		r.Get("/bookings", listBookings.New(log, bookings))
		r.Get("/bookings/{id}", getBooking.New(log, bookings))
		r.Delete("/bookings/{id}", cancelBooking.New(log, bookings))
	})

	return router
}

func setupStorage(cfg *config.Config) (store, error) {
	switch cfg.Storage.Driver {
	case storageMemory:
		return memory.New(), nil
	case storagePostgres, "":
		s, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New("unknown storage driver " + cfg.Storage.Driver)
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
