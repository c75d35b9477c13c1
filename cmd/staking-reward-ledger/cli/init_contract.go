package cli

import (
	"fmt"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// InitContractCmd writes the initial ledger config from the contract section
// of the config file.
// Usage: ./staking-reward-ledger init-contract --config config.yml
func InitContractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-contract",
		Short: "Initializes the ledger with the configured owner, tokens and tiers",
		Args:  cobra.ExactArgs(0),
		RunE:  initContract,
	}
}

func initContract(cmd *cobra.Command, _ []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Contract.Owner == "" {
		return fmt.Errorf("contract owner must be configured")
	}

	l, err := openLedger(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer l.close(ctx)

	if _, terr := l.service.Instantiate(ctx); terr != nil {
		return terr
	}

	log.Ctx(ctx).Info().Str("owner", cfg.Contract.Owner).Msg("ledger initialized")
	return nil
}
