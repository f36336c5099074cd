package test

import (
	"context"
	"testing"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/router"
	"github/chapool/go-disperse/internal/config"
	"github/chapool/go-disperse/internal/ledger/memledger"
)

// WithTestServer creates a fully wired server backed by an in-memory ledger
// and hands it to closure, shutting everything down afterwards.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a caller-supplied config.
func WithTestServerConfigurable(t *testing.T, config config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(config)
	if err != nil {
		t.Fatalf("Failed to initialize server: %v", err)
	}

	router.Init(s)

	defer func() {
		for _, err := range s.Shutdown(context.Background()) {
			t.Errorf("Failed to shutdown server component: %v", err)
		}
	}()

	closure(s)
}

// DefaultTestConfig returns the service config pinned to the in-memory
// ledger, keeping tests independent of any external store.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Ledger.Backend = "memory"
	cfg.Echo.EnableRequestLoggerMiddleware = false

	return cfg
}

// Memledger returns the server's ledger as the concrete in-memory type so
// tests can seed balances and allowances.
func Memledger(t *testing.T, s *api.Server) *memledger.Ledger {
	t.Helper()

	l, ok := s.Ledger.(*memledger.Ledger)
	if !ok {
		t.Fatalf("server ledger is %T, expected *memledger.Ledger", s.Ledger)
	}

	return l
}
