package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/go-disperse/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the effective server config",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal server config")
			}

			fmt.Println(string(out))
		},
	}
}
