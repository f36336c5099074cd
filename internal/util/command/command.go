package command

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/config"
)

// NewSubcommandGroup returns a cobra command that only exists to group its
// subcommands and prints usage when called directly.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes a fully wired (but not listening) server, hands it to
// fn and shuts it down afterwards. Used by one-shot subcommands that need the
// server's components without serving HTTP.
func WithServer(ctx context.Context, cfg config.Server, fn func(ctx context.Context, s *api.Server) error) error {
	cfg.ApplyLogger()

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	defer func() {
		for _, err := range s.Shutdown(ctx) {
			log.Error().Err(err).Msg("Failed to shutdown server component")
		}
	}()

	return fn(ctx, s)
}
