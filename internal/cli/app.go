package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/envelope-zero/envelopes/internal/config"
	"github.com/envelope-zero/envelopes/internal/models"
	"github.com/envelope-zero/envelopes/internal/remote"
	"github.com/envelope-zero/envelopes/internal/remote/database"
	"github.com/envelope-zero/envelopes/internal/remote/supabase"
	"github.com/envelope-zero/envelopes/internal/service"
	"github.com/envelope-zero/envelopes/internal/store"
	"github.com/rs/zerolog/log"
)

// newService wires the store of the configured owner to the configured
// remote service.
//
// The returned function closes the database connection, if any.
func newService(cfg config.Config) (*service.Envelopes, func(), error) {
	r, ownerID, cleanup, err := newRemote(cfg)
	if err != nil {
		return nil, func() {}, err
	}

	s := store.New(store.WithLogger(log.Logger))
	svc := service.New(r, s, ownerID, service.WithTimeout(cfg.RemoteTimeout), service.WithLogger(log.Logger))

	return svc, cleanup, nil
}

func newRemote(cfg config.Config) (remote.Service, string, func(), error) {
	switch cfg.Remote {
	case config.RemoteSupabase:
		client, err := supabase.NewClient(supabase.Config{
			URL:         cfg.Supabase.URL,
			APIKey:      cfg.Supabase.AnonKey,
			AccessToken: cfg.Supabase.AccessToken,
		})
		if err != nil {
			return nil, "", func() {}, err
		}

		ownerID := cfg.OwnerID
		if ownerID == "" {
			ownerID, err = supabase.OwnerFromToken(cfg.Supabase.AccessToken)
			if err != nil {
				return nil, "", func() {}, err
			}
		}

		log.Info().Str("url", cfg.Supabase.URL).Str("owner", ownerID).Msg("using Supabase as remote service")
		return supabase.New(client), ownerID, func() {}, nil

	case config.RemoteDatabase:
		if cfg.UsePostgres() {
			if err := models.ConnectPostgres(cfg.PostgresDSN()); err != nil {
				return nil, "", func() {}, err
			}
			log.Info().Str("host", cfg.DB.Host).Msg("using PostgreSQL as remote service")
		} else {
			if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
				return nil, "", func() {}, fmt.Errorf("creating data directory: %w", err)
			}

			if err := models.Connect(cfg.SQLiteDSN()); err != nil {
				return nil, "", func() {}, err
			}
			log.Info().Str("dir", cfg.DataDir).Msg("using SQLite as remote service")
		}

		cleanup := func() {
			sqlDB, err := models.DB.DB()
			if err == nil {
				sqlDB.Close()
			}
		}

		return database.New(nil), cfg.OwnerID, cleanup, nil
	}

	return nil, "", func() {}, errors.New("unknown remote backend " + cfg.Remote)
}
