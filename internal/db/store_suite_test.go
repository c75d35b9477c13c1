package db_test

import (
	"errors"
	"testing"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigDocument() *model.ConfigDocument {
	return &model.ConfigDocument{
		ID:          model.ConfigDocumentID,
		Owner:       testutil.RandomAddress("bbn"),
		StakeToken:  model.DenomDocument{Kind: "cw20", Ref: testutil.RandomContractAddress("bbn")},
		RewardToken: model.DenomDocument{Kind: "native", Ref: "ubbn"},
		Tiers: []model.TierDocument{
			{Duration: 30 * 86400, Rate: 10},
			{Duration: 730 * 86400, Rate: 100},
		},
		RewardInterval: 86400,
		Enabled:        true,
	}
}

// runStoreSuite checks the DbInterface contract against an empty store.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) db.DbInterface) {
	t.Run("ping", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Ping(t.Context()))
	})

	t.Run("config lifecycle", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		_, err := store.GetConfig(ctx)
		require.Error(t, err)
		assert.True(t, db.IsNotFoundError(err))

		err = store.UpdateConfig(ctx, func(cfg *model.ConfigDocument) error { return nil })
		assert.True(t, db.IsNotFoundError(err))

		cfg := testConfigDocument()
		require.NoError(t, store.SaveConfig(ctx, cfg))

		got, err := store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg, got)

		newOwner := testutil.RandomAddress("bbn")
		require.NoError(t, store.UpdateConfig(ctx, func(cfg *model.ConfigDocument) error {
			cfg.Owner = newOwner
			cfg.Enabled = false
			return nil
		}))

		got, err = store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, newOwner, got.Owner)
		assert.False(t, got.Enabled)
		assert.Equal(t, cfg.Tiers, got.Tiers)
	})

	t.Run("failed update writes nothing", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		cfg := testConfigDocument()
		require.NoError(t, store.SaveConfig(ctx, cfg))

		errRejected := errors.New("rejected")
		err := store.UpdateConfig(ctx, func(doc *model.ConfigDocument) error {
			doc.Owner = "someone else"
			return errRejected
		})
		require.ErrorIs(t, err, errRejected)

		got, err := store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg.Owner, got.Owner)
	})

	t.Run("stakers", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		address := testutil.RandomAddress("bbn")
		_, err := store.GetStaker(ctx, address)
		assert.True(t, db.IsNotFoundError(err))

		staker := model.NewStakerDocument(address)
		staker.NextRecordID = 2
		staker.Records = append(staker.Records,
			model.StakeRecordDocument{ID: 0, OwnerAddress: address, Principal: "1000", AccruedReward: "0", CheckpointTime: 10},
			model.StakeRecordDocument{ID: 1, TierIndex: 3, OwnerAddress: address, Principal: "340282366920938463463374607431768211455", AccruedReward: "7", CheckpointTime: 20},
		)
		require.NoError(t, store.SaveStaker(ctx, staker))

		got, err := store.GetStaker(ctx, address)
		require.NoError(t, err)
		assert.Equal(t, staker, got)

		// overwrite with an emptied list
		staker.Records = nil
		require.NoError(t, store.SaveStaker(ctx, staker))

		got, err = store.GetStaker(ctx, address)
		require.NoError(t, err)
		assert.Empty(t, got.Records)
		assert.Equal(t, uint64(2), got.NextRecordID)
	})

	t.Run("iterate stakers", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		want := map[string]bool{}
		for range 5 {
			address := testutil.RandomAddress("bbn")
			want[address] = true
			require.NoError(t, store.SaveStaker(ctx, model.NewStakerDocument(address)))
		}

		seen := map[string]bool{}
		require.NoError(t, store.IterateStakers(ctx, func(staker *model.StakerDocument) error {
			seen[staker.Address] = true
			return nil
		}))
		assert.Equal(t, want, seen)

		errStop := errors.New("stop")
		calls := 0
		err := store.IterateStakers(ctx, func(*model.StakerDocument) error {
			calls++
			return errStop
		})
		require.ErrorIs(t, err, errStop)
		assert.Equal(t, 1, calls)
	})

	t.Run("contract info", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		_, err := store.GetContractInfo(ctx)
		assert.True(t, db.IsNotFoundError(err))

		info := model.NewContractInfoDocument("incentive", "0.1.0")
		require.NoError(t, store.SaveContractInfo(ctx, info))

		info.Version = "0.2.0"
		require.NoError(t, store.SaveContractInfo(ctx, info))

		got, err := store.GetContractInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, info, got)
	})

	t.Run("initialize", func(t *testing.T) {
		store := newStore(t)
		ctx := t.Context()

		info := model.NewContractInfoDocument("incentive", "0.1.0")
		cfg := testConfigDocument()
		require.NoError(t, store.Initialize(ctx, info, cfg))

		gotCfg, err := store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg, gotCfg)
		gotInfo, err := store.GetContractInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, info, gotInfo)

		// a second initialize is rejected and leaves both documents alone
		err = store.Initialize(ctx, model.NewContractInfoDocument("other", "9.9.9"), testConfigDocument())
		require.Error(t, err)
		assert.True(t, db.IsDuplicateKeyError(err))

		gotCfg, err = store.GetConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, cfg, gotCfg)
		gotInfo, err = store.GetContractInfo(ctx)
		require.NoError(t, err)
		assert.Equal(t, info, gotInfo)
	})
}
