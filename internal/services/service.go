package services

import (
	"time"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/clients/bankclient"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
)

// Service is the host of the ledger contract. It supplies the execution
// environment, records every call and ships the resulting transfer intents.
type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	bank      bankclient.BankInterface
	contract  *staking.Contract
	publisher queue.Publisher
	now       func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	bank bankclient.BankInterface,
	publisher queue.Publisher,
) *Service {
	return &Service{
		cfg:       cfg,
		db:        db,
		bank:      bank,
		contract:  staking.NewContract(db, bank, cfg.Contract.AddressPrefix),
		publisher: publisher,
		now:       time.Now,
	}
}

// env builds the call environment. A zero blockTime means "now".
func (s *Service) env(blockTime uint64) staking.Env {
	if blockTime == 0 {
		blockTime = uint64(s.now().Unix())
	}

	return staking.Env{
		BlockTime:       blockTime,
		ContractAddress: s.cfg.Contract.Address,
	}
}
