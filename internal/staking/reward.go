package staking

import (
	"fmt"
	"slices"
	"sort"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

const secondsPerDay uint64 = 24 * 60 * 60

const (
	OneMonthDuration = 30 * secondsPerDay
	SixMonthDuration = 180 * secondsPerDay
	OneYearDuration  = 365 * secondsPerDay
	TwoYearDuration  = 730 * secondsPerDay
)

const (
	OneMonthRate uint64 = 10
	SixMonthRate uint64 = 20
	OneYearRate  uint64 = 40
	TwoYearRate  uint64 = 100
)

const (
	rateDenominator = 100
	// a claim pays out one week worth of the tier's annual reward
	payoutDays  = 7
	daysPerYear = 365
)

// Tier grants Rate percent once a record has been checkpointed for at least
// Duration seconds.
type Tier struct {
	Duration uint64 `json:"duration"`
	Rate     uint64 `json:"rate"`
}

func DefaultTiers() []Tier {
	return []Tier{
		{Duration: OneMonthDuration, Rate: OneMonthRate},
		{Duration: SixMonthDuration, Rate: SixMonthRate},
		{Duration: OneYearDuration, Rate: OneYearRate},
		{Duration: TwoYearDuration, Rate: TwoYearRate},
	}
}

// SortTiers returns a copy of tiers ordered longest duration first.
func SortTiers(tiers []Tier) []Tier {
	sorted := slices.Clone(tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration > sorted[j].Duration
	})
	return sorted
}

// MatchTier returns the longest tier reached by elapsed seconds.
func MatchTier(elapsed uint64, tiers []Tier) (Tier, bool) {
	for _, tier := range SortTiers(tiers) {
		if elapsed >= tier.Duration {
			return tier, true
		}
	}
	return Tier{}, false
}

// ElapsedSeconds is now - checkpoint, or 0 when the checkpoint lies in the
// future.
func ElapsedSeconds(checkpoint, now uint64) uint64 {
	if now <= checkpoint {
		return 0
	}
	return now - checkpoint
}

// ComputeReward returns floor(floor(principal * rate / 100) * 7 / 365) for
// the tier matched by elapsed. No match yields zero. Intermediate products
// use the full 256-bit range of sdkmath.Int; only the result must fit an
// amount.
func ComputeReward(principal sdkmath.Int, elapsed uint64, tiers []Tier) (sdkmath.Int, error) {
	if err := types.CheckAmount(principal); err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: principal: %s", ErrOverflow, err)
	}

	tier, ok := MatchTier(elapsed, tiers)
	if !ok || tier.Rate == 0 || principal.IsZero() {
		return sdkmath.ZeroInt(), nil
	}

	scaled, err := safeMul(principal, sdkmath.NewIntFromUint64(tier.Rate))
	if err != nil {
		return sdkmath.Int{}, err
	}
	tierReward := scaled.QuoRaw(rateDenominator)

	weekly, err := safeMul(tierReward, sdkmath.NewInt(payoutDays))
	if err != nil {
		return sdkmath.Int{}, err
	}

	reward := weekly.QuoRaw(daysPerYear)
	if reward.GT(types.MaxAmount) {
		return sdkmath.Int{}, fmt.Errorf("%w: reward %s", ErrOverflow, reward)
	}
	return reward, nil
}

// safeMul fails instead of wrapping past the 256-bit sdkmath.Int bound.
func safeMul(a, b sdkmath.Int) (sdkmath.Int, error) {
	res, err := a.SafeMul(b)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %s * %s", ErrOverflow, a, b)
	}
	return res, nil
}

func checkedAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	res, err := a.SafeAdd(b)
	if err != nil || res.GT(types.MaxAmount) {
		return sdkmath.Int{}, fmt.Errorf("%w: %s + %s", ErrOverflow, a, b)
	}
	return res, nil
}
