package staking

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

func configToDocument(cfg *Config) *model.ConfigDocument {
	tiers := make([]model.TierDocument, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, model.TierDocument{Duration: t.Duration, Rate: t.Rate})
	}

	return &model.ConfigDocument{
		ID:             model.ConfigDocumentID,
		Owner:          cfg.Owner,
		StakeToken:     denomToDocument(cfg.StakeToken),
		RewardToken:    denomToDocument(cfg.RewardToken),
		Tiers:          tiers,
		RewardInterval: cfg.RewardInterval,
		Enabled:        cfg.Enabled,
	}
}

func configFromDocument(doc *model.ConfigDocument) *Config {
	tiers := make([]Tier, 0, len(doc.Tiers))
	for _, t := range doc.Tiers {
		tiers = append(tiers, Tier{Duration: t.Duration, Rate: t.Rate})
	}

	return &Config{
		Owner:          doc.Owner,
		StakeToken:     denomFromDocument(doc.StakeToken),
		RewardToken:    denomFromDocument(doc.RewardToken),
		Tiers:          tiers,
		RewardInterval: doc.RewardInterval,
		Enabled:        doc.Enabled,
	}
}

func denomToDocument(d types.Denom) model.DenomDocument {
	return model.DenomDocument{Kind: d.Kind.String(), Ref: d.Ref}
}

func denomFromDocument(doc model.DenomDocument) types.Denom {
	return types.Denom{Kind: types.DenomKind(doc.Kind), Ref: doc.Ref}
}

func stakerToDocument(s *Staker) *model.StakerDocument {
	doc := model.NewStakerDocument(s.Address)
	doc.NextRecordID = s.NextRecordID
	for _, r := range s.Records {
		doc.Records = append(doc.Records, model.StakeRecordDocument{
			ID:             r.ID,
			TierIndex:      r.TierIndex,
			OwnerAddress:   r.OwnerAddress,
			Principal:      r.Principal.String(),
			AccruedReward:  r.AccruedReward.String(),
			CheckpointTime: r.CheckpointTime,
		})
	}
	return doc
}

func stakerFromDocument(doc *model.StakerDocument) (*Staker, error) {
	s := &Staker{
		Address:      doc.Address,
		NextRecordID: doc.NextRecordID,
		Records:      make([]StakeRecord, 0, len(doc.Records)),
	}

	for _, r := range doc.Records {
		principal, err := types.ParseAmount(r.Principal)
		if err != nil {
			return nil, fmt.Errorf("record %d of %s: principal: %w", r.ID, doc.Address, err)
		}
		accrued, err := types.ParseAmount(r.AccruedReward)
		if err != nil {
			return nil, fmt.Errorf("record %d of %s: accrued reward: %w", r.ID, doc.Address, err)
		}

		s.Records = append(s.Records, StakeRecord{
			ID:             r.ID,
			TierIndex:      r.TierIndex,
			OwnerAddress:   r.OwnerAddress,
			Principal:      principal,
			AccruedReward:  accrued,
			CheckpointTime: r.CheckpointTime,
		})
	}

	return s, nil
}

// loadConfig fails with ErrNotInitialized before instantiate.
func (c *Contract) loadConfig(ctx context.Context) (*Config, *types.Error) {
	doc, err := c.db.GetConfig(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, newError(ErrNotInitialized, "")
		}
		return nil, internalError("failed to load config", err)
	}

	return configFromDocument(doc), nil
}

// updateConfig applies fn to the stored config as one read-modify-write.
func (c *Contract) updateConfig(ctx context.Context, fn func(cfg *Config) error) *types.Error {
	err := c.db.UpdateConfig(ctx, func(doc *model.ConfigDocument) error {
		cfg := configFromDocument(doc)
		if err := fn(cfg); err != nil {
			return err
		}
		*doc = *configToDocument(cfg)
		return nil
	})
	if err != nil {
		if db.IsNotFoundError(err) {
			return newError(ErrNotInitialized, "")
		}
		return types.AsError(err)
	}

	return nil
}

// loadStaker returns an empty ledger entry for accounts that never staked.
func (c *Contract) loadStaker(ctx context.Context, address string) (*Staker, *types.Error) {
	doc, err := c.db.GetStaker(ctx, address)
	if err != nil {
		if db.IsNotFoundError(err) {
			return &Staker{Address: address, Records: []StakeRecord{}}, nil
		}
		return nil, internalError("failed to load staker", err)
	}

	staker, err := stakerFromDocument(doc)
	if err != nil {
		return nil, internalError("failed to decode staker", err)
	}

	return staker, nil
}

func (c *Contract) saveStaker(ctx context.Context, staker *Staker) *types.Error {
	if err := c.db.SaveStaker(ctx, stakerToDocument(staker)); err != nil {
		return internalError("failed to save staker", err)
	}
	return nil
}

// locate resolves sel to a position in s.Records.
func (s *Staker) locate(sel *RecordSelector) (int, *types.Error) {
	switch {
	case sel == nil || (sel.Index == nil) == (sel.ID == nil):
		return 0, newError(ErrInvalidInput, "exactly one of index or id must be set")
	case sel.Index != nil:
		if *sel.Index >= uint64(len(s.Records)) {
			return 0, newError(ErrStakingRecordIndexOverflow, "index %d, %d records", *sel.Index, len(s.Records))
		}
		return int(*sel.Index), nil
	default:
		for i, r := range s.Records {
			if r.ID == *sel.ID {
				return i, nil
			}
		}
		return 0, newError(ErrStakingRecordNotFound, "id %d", *sel.ID)
	}
}

// TotalPrincipal sums the principal of all records of s.
func (s *Staker) TotalPrincipal() (sdkmath.Int, error) {
	total := sdkmath.ZeroInt()
	for _, r := range s.Records {
		var err error
		if total, err = checkedAdd(total, r.Principal); err != nil {
			return sdkmath.Int{}, err
		}
	}
	return total, nil
}
