package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/chapool/go-disperse/internal/config"
	"github/chapool/go-disperse/internal/disburse"
	"github/chapool/go-disperse/internal/ledger"
	"github/chapool/go-disperse/internal/util"
)

// DisburseService is the disbursement capability exposed to the handlers.
// Alias to disburse.Service for API access.
type DisburseService = disburse.Service

type Router struct {
	Routes             []*echo.Route
	Root               *echo.Group
	Management         *echo.Group
	APIV1Disbursements *echo.Group
	APIV1Ledger        *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the
// components in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the serviceSet in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized
// after the InitNewServer call.
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config   config.Server
	Ledger   ledger.Ledger
	Disburse DisburseService
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be
// initialized separately. Components which shouldn't be handled must be
// labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	l ledger.Ledger,
	disburseService DisburseService,
) *Server {
	return &Server{
		Config:   cfg,
		Ledger:   l,
		Disburse: disburseService,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Ledger != nil {
		log.Debug().Msg("Closing ledger")

		if err := s.Ledger.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close ledger")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
