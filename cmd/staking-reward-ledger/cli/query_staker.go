package cli

import (
	"encoding/json"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/tracing"
	"github.com/spf13/cobra"
)

// QueryStakerCmd prints the stake records of an account and, with --at, the
// reward each would pay if claimed at that time.
// Usage: ./staking-reward-ledger query-staker bbn1... [--at 1700000000]
func QueryStakerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query-staker [address]",
		Short: "Prints the stake records of an account",
		Args:  cobra.ExactArgs(1),
		RunE:  queryStaker,
	}

	cmd.Flags().Uint64("at", 0, "Unix time to evaluate pending rewards at, omit to skip")

	return cmd
}

func queryStaker(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	at, err := cmd.Flags().GetUint64("at")
	if err != nil {
		return fmt.Errorf("failed to parse at flag: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer l.close(ctx)

	output := map[string]any{}

	staker, terr := l.service.GetStaker(ctx, args[0])
	if terr != nil {
		return terr
	}
	output["staker"] = staker

	if at > 0 {
		pending, terr := l.service.GetPendingRewards(ctx, args[0], at)
		if terr != nil {
			return terr
		}
		output["pending_rewards"] = pending
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
