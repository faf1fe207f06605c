// Package server wires a config.Config to a running parse-service HTTP
// server: selecting and opening the backing dao.Store, building the chi
// router, and serving it.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/phpsyn"
	"github.com/dekarrin/phpsyn/internal/config"
	"github.com/dekarrin/phpsyn/internal/plog"
	"github.com/dekarrin/phpsyn/server/api"
	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/dao/inmem"
	"github.com/dekarrin/phpsyn/server/dao/sqlite"
)

// Server is a running (or not-yet-started) phpsyn parse service.
type Server struct {
	cfg config.Config
	db  dao.Store
	log *plog.Logger
	srv *http.Server
}

// New builds a Server from cfg, opening the audit-log store cfg.DB selects.
// The returned Server has not started listening; call ListenAndServe for
// that.
func New(cfg config.Config, log *plog.Logger) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("could not open datastore: %w", err)
	}

	a := api.API{
		Store:        db,
		ParseOptions: phpsyn.Options{ShortTagsEnabled: cfg.Dialect.ShortTagsEnabled},
		Secret:       cfg.AuthSecret,
		UnauthDelay:  time.Second,
		Log:          log,
	}

	router := chi.NewRouter()
	a.Mount(router)

	return &Server{
		cfg: cfg,
		db:  db,
		log: log,
		srv: &http.Server{
			Addr:    cfg.ListenAddress,
			Handler: router,
		},
	}, nil
}

func connect(dbCfg config.Database) (dao.Store, error) {
	switch dbCfg.Type {
	case config.DatabaseInMemory, config.DatabaseNone:
		return inmem.NewDatastore(), nil
	case config.DatabaseSQLite:
		return sqlite.NewDatastore(dbCfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown database type: %q", dbCfg.Type)
	}
}

// ListenAndServe starts the HTTP server and blocks until it stops or an
// unrecoverable error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Infof("listening on %s", s.cfg.ListenAddress)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server and closes its datastore.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	return s.db.Close()
}
