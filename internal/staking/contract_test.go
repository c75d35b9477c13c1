package staking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/babylonlabs-io/staking-reward-ledger/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	prefix      = "bbn"
	rewardDenom = "ubbn"
	startTime   = uint64(1_700_000_000)
	day         = uint64(24 * 60 * 60)
)

type fakeBank struct {
	mu       sync.Mutex
	balances map[types.Denom]sdkmath.Int
	err      error
}

func newFakeBank() *fakeBank {
	return &fakeBank{balances: map[types.Denom]sdkmath.Int{}}
}

func (b *fakeBank) Balance(_ context.Context, denom types.Denom, _ string) (sdkmath.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return sdkmath.Int{}, b.err
	}
	balance, ok := b.balances[denom]
	if !ok {
		return sdkmath.ZeroInt(), nil
	}
	return balance, nil
}

func (b *fakeBank) set(denom types.Denom, amount int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[denom] = sdkmath.NewInt(amount)
}

// failingInitStore rejects Initialize and passes everything else through.
type failingInitStore struct {
	db.DbInterface
}

func (failingInitStore) Initialize(context.Context, *model.ContractInfoDocument, *model.ConfigDocument) error {
	return errors.New("disk full")
}

type testLedger struct {
	store    db.DbInterface
	contract *staking.Contract
	bank     *fakeBank
	owner    string
	token    string
	custody  string
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()

	store, err := db.NewBadger(config.DbConfig{Type: config.DbTypeBadger})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	l := &testLedger{
		store:   store,
		bank:    newFakeBank(),
		owner:   testutil.RandomAddress(prefix),
		token:   testutil.RandomContractAddress(prefix),
		custody: testutil.RandomContractAddress(prefix),
	}
	l.contract = staking.NewContract(store, l.bank, prefix)

	return l
}

// newInstantiatedLedger returns a ledger with the default tier table and
// generous custody of both tokens.
func newInstantiatedLedger(t *testing.T) *testLedger {
	t.Helper()

	l := newTestLedger(t)
	_, terr := l.contract.Instantiate(t.Context(), l.env(startTime), staking.MessageInfo{Sender: l.owner}, staking.InstantiateMsg{
		StakeTokenAddress: l.token,
		RewardTokenDenom:  rewardDenom,
		RewardInterval:    day,
	})
	require.Nil(t, terr)

	l.bank.set(l.stakeDenom(), 1_000_000)
	l.bank.set(l.rewardDenom(), 1_000_000)
	return l
}

func (l *testLedger) env(blockTime uint64) staking.Env {
	return staking.Env{BlockTime: blockTime, ContractAddress: l.custody}
}

func (l *testLedger) stakeDenom() types.Denom {
	return types.NewCW20Denom(l.token)
}

func (l *testLedger) rewardDenom() types.Denom {
	return types.NewNativeDenom(rewardDenom)
}

func (l *testLedger) execute(t *testing.T, sender string, at uint64, msg staking.ExecuteMsg) (*staking.Response, *types.Error) {
	t.Helper()
	return l.contract.Execute(t.Context(), l.env(at), staking.MessageInfo{Sender: sender}, msg)
}

func (l *testLedger) deposit(t *testing.T, staker string, amount int64, at uint64) (*staking.Response, *types.Error) {
	t.Helper()
	wrapper, err := staking.NewStakeReceiveMsg(staker, sdkmath.NewInt(amount), 0)
	require.NoError(t, err)
	return l.execute(t, l.token, at, staking.ExecuteMsg{Receive: wrapper})
}

func (l *testLedger) mustDeposit(t *testing.T, staker string, amount int64, at uint64) {
	t.Helper()
	_, terr := l.deposit(t, staker, amount, at)
	require.Nil(t, terr)
}

func (l *testLedger) records(t *testing.T, staker string) []staking.StakeRecord {
	t.Helper()
	resp, terr := l.contract.QueryStaker(t.Context(), staker)
	require.Nil(t, terr)
	return resp.Records
}

func requireCode(t *testing.T, terr *types.Error, sentinel error, code types.ErrorCode) {
	t.Helper()
	require.NotNil(t, terr)
	assert.ErrorIs(t, terr, sentinel)
	assert.Equal(t, code, terr.ErrorCode)
}

func TestInstantiate(t *testing.T) {
	l := newInstantiatedLedger(t)
	ctx := t.Context()

	cfg, terr := l.contract.QueryConfig(ctx)
	require.Nil(t, terr)
	assert.Equal(t, l.owner, cfg.Owner)
	assert.Equal(t, l.stakeDenom(), cfg.StakeToken)
	assert.Equal(t, l.rewardDenom(), cfg.RewardToken)
	assert.Equal(t, staking.DefaultTiers(), cfg.Tiers)
	assert.Equal(t, day, cfg.RewardInterval)
	assert.True(t, cfg.Enabled)

	info, err := l.store.GetContractInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, staking.ContractName, info.Contract)
	assert.Equal(t, staking.ContractVersion, info.Version)

	t.Run("second instantiate fails", func(t *testing.T) {
		other := testutil.RandomAddress(prefix)
		_, terr := l.contract.Instantiate(ctx, l.env(startTime), staking.MessageInfo{Sender: other}, staking.InstantiateMsg{
			StakeTokenAddress: l.token,
			RewardTokenDenom:  rewardDenom,
		})
		requireCode(t, terr, staking.ErrAlreadyInitialized, types.AlreadyInitialized)

		cfg, terr := l.contract.QueryConfig(ctx)
		require.Nil(t, terr)
		assert.Equal(t, l.owner, cfg.Owner)
	})
	t.Run("store failure leaves nothing behind", func(t *testing.T) {
		fresh := newTestLedger(t)
		contract := staking.NewContract(failingInitStore{DbInterface: fresh.store}, fresh.bank, prefix)

		_, terr := contract.Instantiate(t.Context(), fresh.env(startTime), staking.MessageInfo{Sender: fresh.owner}, staking.InstantiateMsg{
			StakeTokenAddress: fresh.token,
			RewardTokenDenom:  rewardDenom,
		})
		require.NotNil(t, terr)
		assert.Equal(t, types.InternalServiceError, terr.ErrorCode)

		_, err := fresh.store.GetContractInfo(t.Context())
		assert.True(t, db.IsNotFoundError(err))
		_, err = fresh.store.GetConfig(t.Context())
		assert.True(t, db.IsNotFoundError(err))
	})
	t.Run("operations before instantiate", func(t *testing.T) {
		fresh := newTestLedger(t)
		_, terr := fresh.deposit(t, testutil.RandomAddress(prefix), 10, startTime)
		requireCode(t, terr, staking.ErrNotInitialized, types.NotInitialized)

		_, terr = fresh.contract.QueryConfig(t.Context())
		requireCode(t, terr, staking.ErrNotInitialized, types.NotInitialized)
	})
}

func TestDeposit(t *testing.T) {
	l := newInstantiatedLedger(t)
	staker := testutil.RandomAddress(prefix)

	resp, terr := l.deposit(t, staker, 1000, startTime)
	require.Nil(t, terr)
	assert.Empty(t, resp.Messages)
	assert.Equal(t, staking.ActionStake, resp.Action())
	amount, _ := resp.Attribute(staking.AttributeAmount)
	assert.Equal(t, "1000", amount)

	l.mustDeposit(t, staker, 500, startTime+day)

	records := l.records(t, staker)
	require.Len(t, records, 2)
	assert.Equal(t, uint64(0), records[0].ID)
	assert.Equal(t, uint64(1), records[1].ID)
	assert.Equal(t, int64(1000), records[0].Principal.Int64())
	assert.Equal(t, int64(500), records[1].Principal.Int64())
	assert.Equal(t, startTime, records[0].CheckpointTime)
	assert.Equal(t, startTime+day, records[1].CheckpointTime)
	assert.Equal(t, staker, records[0].OwnerAddress)
	assert.True(t, records[0].AccruedReward.IsZero())

	t.Run("zero amount", func(t *testing.T) {
		_, terr := l.deposit(t, staker, 0, startTime)
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})
	t.Run("foreign token", func(t *testing.T) {
		wrapper, err := staking.NewStakeReceiveMsg(staker, sdkmath.NewInt(10), 0)
		require.NoError(t, err)
		foreign := testutil.RandomContractAddress(prefix)

		_, terr := l.execute(t, foreign, startTime, staking.ExecuteMsg{Receive: wrapper})
		requireCode(t, terr, staking.ErrUnacceptableToken, types.UnacceptableToken)
	})
	t.Run("tier index out of range", func(t *testing.T) {
		wrapper, err := staking.NewStakeReceiveMsg(staker, sdkmath.NewInt(10), 4)
		require.NoError(t, err)

		_, terr := l.execute(t, l.token, startTime, staking.ExecuteMsg{Receive: wrapper})
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})
	t.Run("malformed payload", func(t *testing.T) {
		wrapper := &staking.Cw20ReceiveMsg{Sender: staker, Amount: sdkmath.NewInt(10), Msg: []byte("{not json")}
		_, terr := l.execute(t, l.token, startTime, staking.ExecuteMsg{Receive: wrapper})
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})
	t.Run("invalid staker address", func(t *testing.T) {
		_, terr := l.deposit(t, "cosmos1invalid", 10, startTime)
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})

	// failed deposits leave the ledger untouched
	assert.Len(t, l.records(t, staker), 2)
}

func TestClaimReward(t *testing.T) {
	t.Run("400 days", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)

		claimAt := startTime + 400*day
		resp, terr := l.execute(t, staker, claimAt, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.Nil(t, terr)

		require.Len(t, resp.Messages, 1)
		assert.Equal(t, l.rewardDenom(), resp.Messages[0].Denom)
		assert.Equal(t, staker, resp.Messages[0].Recipient)
		assert.Equal(t, int64(7), resp.Messages[0].Amount.Int64())
		assert.Equal(t, staking.ActionClaimReward, resp.Action())

		records := l.records(t, staker)
		require.Len(t, records, 1)
		assert.Equal(t, claimAt, records[0].CheckpointTime)
		assert.Equal(t, int64(7), records[0].AccruedReward.Int64())
		assert.Equal(t, int64(1000), records[0].Principal.Int64())
	})
	t.Run("800 days by id", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)

		resp, terr := l.execute(t, staker, startTime+800*day, staking.ExecuteMsg{ClaimReward: staking.ByID(0)})
		require.Nil(t, terr)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, int64(19), resp.Messages[0].Amount.Int64())
	})
	t.Run("max supply principal", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.bank.mu.Lock()
		l.bank.balances[l.rewardDenom()] = types.MaxAmount
		l.bank.mu.Unlock()

		wrapper, err := staking.NewStakeReceiveMsg(staker, types.MaxAmount, 0)
		require.NoError(t, err)
		_, terr := l.execute(t, l.token, startTime, staking.ExecuteMsg{Receive: wrapper})
		require.Nil(t, terr)

		resp, terr := l.execute(t, staker, startTime+800*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.Nil(t, terr)
		require.Len(t, resp.Messages, 1)
		want := types.MaxAmount.MulRaw(7).QuoRaw(365)
		assert.True(t, want.Equal(resp.Messages[0].Amount), "want %s got %s", want, resp.Messages[0].Amount)
	})
	t.Run("checkpoint restarts accrual", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)

		_, terr := l.execute(t, staker, startTime+400*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.Nil(t, terr)

		// only 10 days since the last checkpoint
		resp, terr := l.execute(t, staker, startTime+410*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.Nil(t, terr)
		assert.Empty(t, resp.Messages)
		reward, _ := resp.Attribute(staking.AttributeRewardAmount)
		assert.Equal(t, "0", reward)

		records := l.records(t, staker)
		assert.Equal(t, startTime+410*day, records[0].CheckpointTime)
		assert.Equal(t, int64(7), records[0].AccruedReward.Int64())
	})
	t.Run("block time before checkpoint", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)

		resp, terr := l.execute(t, staker, startTime-day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.Nil(t, terr)
		assert.Empty(t, resp.Messages)
		assert.Equal(t, startTime, l.records(t, staker)[0].CheckpointTime)
	})
	t.Run("not enough reward custody", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)
		l.bank.set(l.rewardDenom(), 6)

		_, terr := l.execute(t, staker, startTime+400*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		requireCode(t, terr, staking.ErrNotEnoughReward, types.NotEnoughReward)

		// checkpoint is not advanced by a failed claim
		records := l.records(t, staker)
		assert.Equal(t, startTime, records[0].CheckpointTime)
		assert.True(t, records[0].AccruedReward.IsZero())
	})
	t.Run("bank failure", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)
		l.bank.err = errors.New("lcd unavailable")

		_, terr := l.execute(t, staker, startTime+400*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.NotNil(t, terr)
		assert.Equal(t, types.InternalServiceError, terr.ErrorCode)
		assert.Equal(t, startTime, l.records(t, staker)[0].CheckpointTime)
	})
	t.Run("missing records", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)

		_, terr := l.execute(t, staker, startTime, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		requireCode(t, terr, staking.ErrStakingRecordIndexOverflow, types.StakingRecordIndexOverflow)

		l.mustDeposit(t, staker, 1000, startTime)
		_, terr = l.execute(t, staker, startTime, staking.ExecuteMsg{ClaimReward: staking.ByIndex(1)})
		requireCode(t, terr, staking.ErrStakingRecordIndexOverflow, types.StakingRecordIndexOverflow)

		_, terr = l.execute(t, staker, startTime, staking.ExecuteMsg{ClaimReward: staking.ByID(42)})
		requireCode(t, terr, staking.ErrStakingRecordNotFound, types.StakingRecordNotFound)

		_, terr = l.execute(t, staker, startTime, staking.ExecuteMsg{ClaimReward: &staking.RecordSelector{}})
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})
}

func TestUnstake(t *testing.T) {
	t.Run("removes record and shifts later ones", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 100, startTime)
		l.mustDeposit(t, staker, 200, startTime)
		l.mustDeposit(t, staker, 300, startTime)

		resp, terr := l.execute(t, staker, startTime+day, staking.ExecuteMsg{Unstake: staking.ByIndex(1)})
		require.Nil(t, terr)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, l.stakeDenom(), resp.Messages[0].Denom)
		assert.Equal(t, int64(200), resp.Messages[0].Amount.Int64())
		assert.Equal(t, staker, resp.Messages[0].Recipient)
		staked, _ := resp.Attribute(staking.AttributeStakedAmount)
		assert.Equal(t, "200", staked)

		records := l.records(t, staker)
		require.Len(t, records, 2)
		assert.Equal(t, uint64(0), records[0].ID)
		assert.Equal(t, uint64(2), records[1].ID)
		assert.Equal(t, int64(300), records[1].Principal.Int64())
	})
	t.Run("ids are not reused", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 100, startTime)

		_, terr := l.execute(t, staker, startTime, staking.ExecuteMsg{Unstake: staking.ByID(0)})
		require.Nil(t, terr)
		assert.Empty(t, l.records(t, staker))

		l.mustDeposit(t, staker, 100, startTime)
		records := l.records(t, staker)
		require.Len(t, records, 1)
		assert.Equal(t, uint64(1), records[0].ID)
	})
	t.Run("not enough stake custody", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)
		l.bank.set(l.stakeDenom(), 999)

		_, terr := l.execute(t, staker, startTime+day, staking.ExecuteMsg{Unstake: staking.ByIndex(0)})
		requireCode(t, terr, staking.ErrNotEnoughStake, types.NotEnoughStake)

		// nothing was removed
		assert.Len(t, l.records(t, staker), 1)
	})
	t.Run("index on empty ledger", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		_, terr := l.execute(t, testutil.RandomAddress(prefix), startTime, staking.ExecuteMsg{Unstake: staking.ByIndex(0)})
		requireCode(t, terr, staking.ErrStakingRecordIndexOverflow, types.StakingRecordIndexOverflow)
	})
}

func TestDisabled(t *testing.T) {
	l := newInstantiatedLedger(t)
	staker := testutil.RandomAddress(prefix)
	l.mustDeposit(t, staker, 1000, startTime)

	_, terr := l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateEnabled: &staking.UpdateEnabledMsg{Enabled: false}})
	require.Nil(t, terr)

	_, terr = l.deposit(t, staker, 10, startTime)
	requireCode(t, terr, staking.ErrDisabled, types.Disabled)
	_, terr = l.execute(t, staker, startTime+400*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
	requireCode(t, terr, staking.ErrDisabled, types.Disabled)
	_, terr = l.execute(t, staker, startTime, staking.ExecuteMsg{Unstake: staking.ByIndex(0)})
	requireCode(t, terr, staking.ErrDisabled, types.Disabled)

	// admin operations keep working
	_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{WithdrawReward: &staking.WithdrawMsg{Amount: sdkmath.NewInt(10)}})
	require.Nil(t, terr)
	_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateConstants: &staking.UpdateConstantsMsg{
		Tiers:          staking.DefaultTiers(),
		RewardInterval: 2 * day,
	}})
	require.Nil(t, terr)

	_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateEnabled: &staking.UpdateEnabledMsg{Enabled: true}})
	require.Nil(t, terr)
	_, terr = l.execute(t, staker, startTime+400*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
	require.Nil(t, terr)
}

func TestAdmin(t *testing.T) {
	t.Run("non owner is rejected", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		stranger := testutil.RandomAddress(prefix)

		msgs := []staking.ExecuteMsg{
			{UpdateOwner: &staking.UpdateOwnerMsg{Owner: stranger}},
			{UpdateEnabled: &staking.UpdateEnabledMsg{Enabled: false}},
			{UpdateConstants: &staking.UpdateConstantsMsg{}},
			{WithdrawReward: &staking.WithdrawMsg{Amount: sdkmath.NewInt(1)}},
			{WithdrawStake: &staking.WithdrawMsg{Amount: sdkmath.NewInt(1)}},
		}
		for _, msg := range msgs {
			_, terr := l.execute(t, stranger, startTime, msg)
			requireCode(t, terr, staking.ErrUnauthorized, types.Unauthorized)
		}

		cfg, terr := l.contract.QueryConfig(t.Context())
		require.Nil(t, terr)
		assert.Equal(t, l.owner, cfg.Owner)
		assert.True(t, cfg.Enabled)
	})
	t.Run("update owner", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		newOwner := testutil.RandomAddress(prefix)

		_, terr := l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateOwner: &staking.UpdateOwnerMsg{Owner: "not-an-address"}})
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)

		_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateOwner: &staking.UpdateOwnerMsg{Owner: newOwner}})
		require.Nil(t, terr)

		// previous owner lost its rights
		_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateEnabled: &staking.UpdateEnabledMsg{Enabled: false}})
		requireCode(t, terr, staking.ErrUnauthorized, types.Unauthorized)
		_, terr = l.execute(t, newOwner, startTime, staking.ExecuteMsg{UpdateEnabled: &staking.UpdateEnabledMsg{Enabled: false}})
		require.Nil(t, terr)
	})
	t.Run("update constants drives accrual", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		staker := testutil.RandomAddress(prefix)
		l.mustDeposit(t, staker, 1000, startTime)

		tiers := []staking.Tier{{Duration: day, Rate: 365}}
		_, terr := l.execute(t, l.owner, startTime, staking.ExecuteMsg{UpdateConstants: &staking.UpdateConstantsMsg{
			Tiers:          tiers,
			RewardInterval: 7 * day,
		}})
		require.Nil(t, terr)

		cfg, terr := l.contract.QueryConfig(t.Context())
		require.Nil(t, terr)
		assert.Equal(t, tiers, cfg.Tiers)
		assert.Equal(t, 7*day, cfg.RewardInterval)

		resp, terr := l.execute(t, staker, startTime+2*day, staking.ExecuteMsg{ClaimReward: staking.ByIndex(0)})
		require.Nil(t, terr)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, int64(70), resp.Messages[0].Amount.Int64())
	})
	t.Run("withdrawals", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		l.bank.set(l.rewardDenom(), 50)
		l.bank.set(l.stakeDenom(), 80)

		resp, terr := l.execute(t, l.owner, startTime, staking.ExecuteMsg{WithdrawReward: &staking.WithdrawMsg{Amount: sdkmath.NewInt(50)}})
		require.Nil(t, terr)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, l.rewardDenom(), resp.Messages[0].Denom)
		assert.Equal(t, l.owner, resp.Messages[0].Recipient)
		assert.Equal(t, staking.ActionWithdrawReward, resp.Action())

		_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{WithdrawReward: &staking.WithdrawMsg{Amount: sdkmath.NewInt(51)}})
		requireCode(t, terr, staking.ErrNotEnoughReward, types.NotEnoughReward)

		resp, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{WithdrawStake: &staking.WithdrawMsg{Amount: sdkmath.NewInt(80)}})
		require.Nil(t, terr)
		assert.Equal(t, l.stakeDenom(), resp.Messages[0].Denom)

		_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{WithdrawStake: &staking.WithdrawMsg{Amount: sdkmath.NewInt(81)}})
		requireCode(t, terr, staking.ErrNotEnoughStake, types.NotEnoughStake)

		_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{WithdrawStake: &staking.WithdrawMsg{Amount: sdkmath.ZeroInt()}})
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})
}

func TestExecute_SingleOperation(t *testing.T) {
	l := newInstantiatedLedger(t)

	_, terr := l.execute(t, l.owner, startTime, staking.ExecuteMsg{})
	requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)

	_, terr = l.execute(t, l.owner, startTime, staking.ExecuteMsg{
		UpdateEnabled: &staking.UpdateEnabledMsg{Enabled: false},
		ClaimReward:   staking.ByIndex(0),
	})
	requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
}

func TestMigrate(t *testing.T) {
	t.Run("same contract", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		require.NoError(t, l.store.SaveContractInfo(t.Context(), model.NewContractInfoDocument(staking.ContractName, "0.0.1")))

		resp, terr := l.contract.Migrate(t.Context(), l.env(startTime), staking.MigrateMsg{})
		require.Nil(t, terr)
		from, _ := resp.Attribute("from_version")
		assert.Equal(t, "0.0.1", from)

		info, err := l.store.GetContractInfo(t.Context())
		require.NoError(t, err)
		assert.Equal(t, staking.ContractVersion, info.Version)
	})
	t.Run("foreign contract", func(t *testing.T) {
		l := newInstantiatedLedger(t)
		require.NoError(t, l.store.SaveContractInfo(t.Context(), model.NewContractInfoDocument("crates.io:cw20-base", "1.0.0")))

		_, terr := l.contract.Migrate(t.Context(), l.env(startTime), staking.MigrateMsg{})
		requireCode(t, terr, staking.ErrCannotMigrate, types.CannotMigrate)
		assert.Contains(t, terr.Error(), "crates.io:cw20-base")
	})
	t.Run("empty store", func(t *testing.T) {
		l := newTestLedger(t)
		_, terr := l.contract.Migrate(t.Context(), l.env(startTime), staking.MigrateMsg{})
		requireCode(t, terr, staking.ErrNotInitialized, types.NotInitialized)
	})
}

func TestQueries(t *testing.T) {
	l := newInstantiatedLedger(t)
	alice := testutil.RandomAddress(prefix)
	bob := testutil.RandomAddress(prefix)

	t.Run("unknown account", func(t *testing.T) {
		resp, terr := l.contract.QueryStaker(t.Context(), testutil.RandomAddress(prefix))
		require.Nil(t, terr)
		assert.NotNil(t, resp.Records)
		assert.Empty(t, resp.Records)
	})
	t.Run("invalid address", func(t *testing.T) {
		_, terr := l.contract.QueryStaker(t.Context(), "nope")
		requireCode(t, terr, staking.ErrInvalidInput, types.InvalidInput)
	})
	t.Run("totals and pending rewards", func(t *testing.T) {
		l.mustDeposit(t, alice, 1000, startTime)
		l.mustDeposit(t, alice, 2000, startTime+10*day)
		l.mustDeposit(t, bob, 500, startTime)

		totals, terr := l.contract.QueryTotals(t.Context())
		require.Nil(t, terr)
		assert.Equal(t, 2, totals.Stakers)
		assert.Equal(t, 3, totals.Records)
		assert.Equal(t, int64(3500), totals.TotalPrincipal.Int64())

		pending, terr := l.contract.QueryPendingRewards(t.Context(), alice, startTime+400*day)
		require.Nil(t, terr)
		require.Len(t, pending, 2)
		assert.Equal(t, int64(7), pending[0].Reward.Int64())
		assert.Equal(t, staking.OneYearRate, pending[0].Rate)
		assert.Equal(t, 390*day, pending[1].Elapsed)

		// queries do not move checkpoints
		assert.Equal(t, startTime, l.records(t, alice)[0].CheckpointTime)
	})
}
