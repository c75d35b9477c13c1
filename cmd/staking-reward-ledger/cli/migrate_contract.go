package cli

import (
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func MigrateContractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-contract",
		Short: "Upgrades the stored ledger version after checking the contract name",
		Args:  cobra.ExactArgs(0),
		RunE:  migrateContract,
	}
}

func migrateContract(cmd *cobra.Command, _ []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer l.close(ctx)

	resp, terr := l.service.Migrate(ctx)
	if terr != nil {
		return terr
	}

	from, _ := resp.Attribute("from_version")
	log.Ctx(ctx).Info().
		Str("from_version", from).
		Str("to_version", staking.ContractVersion).
		Msg("ledger migrated")
	return nil
}
