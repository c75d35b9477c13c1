package cli

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/clients/bankclient"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	dbmodel "github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/services"
	"github.com/rs/zerolog/log"
)

// ledger bundles a service with the resources backing it.
type ledger struct {
	service   *services.Service
	db        db.DbInterface
	publisher queue.Publisher
}

// openLedger wires the store, the bank client and the publisher. Commands
// that do not move funds pass withQueue false and get a logging publisher.
func openLedger(ctx context.Context, cfg *config.Config, withQueue bool) (*ledger, error) {
	if cfg.Db.Type == config.DbTypeMongo {
		if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
			return nil, fmt.Errorf("error while setting up ledger db model: %w", err)
		}
	}

	store, err := db.Open(ctx, cfg.Db)
	if err != nil {
		return nil, fmt.Errorf("error while creating db client: %w", err)
	}
	dbClient := db.NewDbWithMetrics(store)

	var bankClient bankclient.BankInterface = bankclient.NewClient(&cfg.Bank)
	bankClient = bankclient.NewBankClientWithMetrics(bankClient)

	queueCfg := cfg.Queue
	if !withQueue {
		queueCfg = nil
	}
	publisher, err := queue.NewQueueManager(queueCfg)
	if err != nil {
		_ = dbClient.Close(ctx)
		return nil, fmt.Errorf("error while creating queue manager: %w", err)
	}

	return &ledger{
		service:   services.NewService(cfg, dbClient, bankClient, publisher),
		db:        dbClient,
		publisher: publisher,
	}, nil
}

func (l *ledger) close(ctx context.Context) {
	l.publisher.Shutdown()
	if err := l.db.Close(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to close db")
	}
}

func loadConfig() (*config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}
	return cfg, nil
}
