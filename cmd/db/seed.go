package db

import (
	"context"
	"database/sql"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/go-disperse/internal/config"
	"github/chapool/go-disperse/internal/ledger/pgledger"
)

// Development accounts funded by the seed command.
var (
	seedSender = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	seedAsset  = common.HexToAddress("0x000000000000000000000000000000000000Ec20")
)

func newSeed() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Inserts development seed balances",
		Long:  `Funds a development sender account with native value and test token units. Only relevant for the "postgres" ledger backend.`,
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			cfg.ApplyLogger()

			if err := applySeeds(context.Background(), cfg); err != nil {
				log.Fatal().Err(err).Msg("Failed to apply seeds")
			}

			log.Info().
				Str("sender", seedSender.Hex()).
				Str("asset", seedAsset.Hex()).
				Msg("Applied seeds")
		},
	}
}

func applySeeds(ctx context.Context, cfg config.Server) error {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}

	l := pgledger.New(db)
	defer l.Close()

	oneEther := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	supply := new(big.Int).Mul(big.NewInt(1000), oneEther)

	if err := l.SeedNativeBalance(ctx, seedSender, supply); err != nil {
		return err
	}

	return l.MintToken(ctx, seedAsset, seedSender, supply)
}
