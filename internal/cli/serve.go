package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envelope-zero/envelopes/internal/config"
	v1 "github.com/envelope-zero/envelopes/internal/controllers/v1"
	"github.com/envelope-zero/envelopes/internal/events"
	"github.com/envelope-zero/envelopes/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, cleanup, err := newService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// Publish every store change to websocket clients and, if configured,
	// to the message broker
	hub := events.NewHub()
	publishers := []events.Publisher{hub}

	if cfg.AMQP.URL != "" {
		amqp, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer amqp.Close()
		publishers = append(publishers, amqp)
	}

	fanout := events.NewFanout(publishers...)
	detachFanout := fanout.Attach(svc.Store())
	defer func() {
		detachFanout()
		fanout.Close()
		hub.Close()
	}()

	// A failed initial load is recorded in the store and can be retried
	// with POST /v1/envelopes/sync
	if err := svc.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("initial load failed")
	}

	r, teardown, err := router.Config(cfg.APIURL)
	defer teardown()
	if err != nil {
		return err
	}

	detachMetrics := router.StoreMetrics(svc.Store())
	defer detachMetrics()

	router.AttachRoutes(v1.Controller{Envelopes: svc, Hub: hub}, r.Group(cfg.APIURL.Path))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("remote", cfg.Remote).Int("envelopes", svc.Store().Len()).Msg("backend startup complete")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
