package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/babylonlabs-io/staking-reward-ledger/testutil"
	"github.com/stretchr/testify/require"
)

const (
	prefix      = "bbn"
	rewardDenom = "ubbn"
	startTime   = int64(1_700_000_000)
	day         = uint64(24 * 60 * 60)
)

type fakeBank struct {
	mu       sync.Mutex
	balances map[types.Denom]sdkmath.Int
	err      error
}

func (b *fakeBank) Balance(_ context.Context, denom types.Denom, _ string) (sdkmath.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return sdkmath.Int{}, b.err
	}
	if balance, ok := b.balances[denom]; ok {
		return balance, nil
	}
	return sdkmath.ZeroInt(), nil
}

func (b *fakeBank) set(denom types.Denom, amount int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[denom] = sdkmath.NewInt(amount)
}

type recordingPublisher struct {
	mu        sync.Mutex
	transfers []*queue.TransferIntentEvent
	audits    []*queue.AuditEvent
	err       error
}

func (p *recordingPublisher) PublishTransferIntent(_ context.Context, ev *queue.TransferIntentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.transfers = append(p.transfers, ev)
	return nil
}

func (p *recordingPublisher) PublishAuditEvent(_ context.Context, ev *queue.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.audits = append(p.audits, ev)
	return nil
}

func (p *recordingPublisher) Shutdown() {}

var errPublish = errors.New("broker unavailable")

type testService struct {
	*Service
	bank      *fakeBank
	publisher *recordingPublisher
}

func newTestConfig() *config.Config {
	return &config.Config{
		Db: config.DbConfig{Type: config.DbTypeBadger},
		Contract: config.ContractConfig{
			Address:           testutil.RandomContractAddress(prefix),
			AddressPrefix:     prefix,
			Owner:             testutil.RandomAddress(prefix),
			StakeTokenAddress: testutil.RandomContractAddress(prefix),
			RewardTokenDenom:  rewardDenom,
			RewardInterval:    24 * time.Hour,
		},
		Poller: config.PollerConfig{
			SolvencyCheckInterval:   time.Minute,
			BalanceQueryConcurrency: 2,
		},
	}
}

func newTestService(t *testing.T, cfg *config.Config) *testService {
	t.Helper()

	store, err := db.NewBadger(cfg.Db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	bank := &fakeBank{balances: map[types.Denom]sdkmath.Int{}}
	publisher := &recordingPublisher{}

	s := NewService(cfg, store, bank, publisher)
	s.now = func() time.Time { return time.Unix(startTime, 0) }

	return &testService{Service: s, bank: bank, publisher: publisher}
}

// newInstantiatedService returns an initialized ledger with generous custody.
func newInstantiatedService(t *testing.T) *testService {
	t.Helper()

	s := newTestService(t, newTestConfig())
	_, terr := s.Instantiate(t.Context())
	require.Nil(t, terr)

	s.bank.set(s.stakeDenom(), 1_000_000)
	s.bank.set(s.rewardDenom(), 1_000_000)
	s.publisher.audits = nil
	return s
}

func (s *testService) stakeDenom() types.Denom {
	return types.NewCW20Denom(s.cfg.Contract.StakeTokenAddress)
}

func (s *testService) rewardDenom() types.Denom {
	return types.NewNativeDenom(rewardDenom)
}

func (s *testService) deposit(t *testing.T, staker string, amount int64, at uint64) {
	t.Helper()

	msg, err := staking.NewStakeReceiveMsg(staker, sdkmath.NewInt(amount), 0)
	require.NoError(t, err)

	_, terr := s.Receive(t.Context(), s.cfg.Contract.StakeTokenAddress, at, *msg)
	require.Nil(t, terr)
}
