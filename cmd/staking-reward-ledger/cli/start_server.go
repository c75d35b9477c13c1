package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/api"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking reward ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer l.close(ctx)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	l.service.StartSolvencyMonitor(ctx)

	if len(cfg.Server.Callers) == 0 {
		log.Warn().Msg("no api callers configured, execute and receive are disabled")
	}

	log.Info().Str("contract", cfg.Contract.Address).Int("callers", len(cfg.Server.Callers)).Msg("ledger server starting")
	return api.NewServer(&cfg.Server, l.service).Start(ctx)
}
