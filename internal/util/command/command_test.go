package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/test"
	"github/chapool/go-disperse/internal/util/command"
)

func TestWithServer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := t.Context()

		var testError = errors.New("test error")

		s.Config.Logger.PrettyPrintConsole = false
		resultErr := command.WithServer(ctx, s.Config, func(ctx context.Context, s *api.Server) error {
			require.NoError(t, s.Ledger.Ping(ctx))

			assert.NotNil(t, s.Disburse)

			return testError
		})

		assert.Equal(t, testError, resultErr)
	})
}
