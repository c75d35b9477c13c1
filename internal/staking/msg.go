package staking

import (
	"encoding/json"

	sdkmath "cosmossdk.io/math"
)

type InstantiateMsg struct {
	StakeTokenAddress string `json:"stake_token_address"`
	RewardTokenDenom  string `json:"reward_token_denom"`
	// Tiers defaults to DefaultTiers when empty.
	Tiers          []Tier `json:"tiers"`
	RewardInterval uint64 `json:"reward_interval"`
}

type MigrateMsg struct{}

// ExecuteMsg carries exactly one operation, encoded as
// {"claim_reward":{"index":0}} on the wire.
type ExecuteMsg struct {
	UpdateOwner     *UpdateOwnerMsg     `json:"update_owner,omitempty"`
	UpdateEnabled   *UpdateEnabledMsg   `json:"update_enabled,omitempty"`
	UpdateConstants *UpdateConstantsMsg `json:"update_constants,omitempty"`
	Receive         *Cw20ReceiveMsg     `json:"receive,omitempty"`
	WithdrawReward  *WithdrawMsg        `json:"withdraw_reward,omitempty"`
	WithdrawStake   *WithdrawMsg        `json:"withdraw_stake,omitempty"`
	ClaimReward     *RecordSelector     `json:"claim_reward,omitempty"`
	Unstake         *RecordSelector     `json:"unstake,omitempty"`
}

func (m ExecuteMsg) count() int {
	n := 0
	for _, set := range []bool{
		m.UpdateOwner != nil,
		m.UpdateEnabled != nil,
		m.UpdateConstants != nil,
		m.Receive != nil,
		m.WithdrawReward != nil,
		m.WithdrawStake != nil,
		m.ClaimReward != nil,
		m.Unstake != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Operation names the action carried by m, "unknown" when none or several
// are set.
func (m ExecuteMsg) Operation() string {
	if m.count() != 1 {
		return "unknown"
	}

	switch {
	case m.UpdateOwner != nil:
		return ActionUpdateOwner
	case m.UpdateEnabled != nil:
		return ActionUpdateEnabled
	case m.UpdateConstants != nil:
		return ActionUpdateConstants
	case m.Receive != nil:
		return ActionStake
	case m.WithdrawReward != nil:
		return ActionWithdrawReward
	case m.WithdrawStake != nil:
		return ActionWithdrawStake
	case m.ClaimReward != nil:
		return ActionClaimReward
	default:
		return ActionUnstake
	}
}

type UpdateOwnerMsg struct {
	Owner string `json:"owner"`
}

type UpdateEnabledMsg struct {
	Enabled bool `json:"enabled"`
}

type UpdateConstantsMsg struct {
	Tiers          []Tier `json:"tiers"`
	RewardInterval uint64 `json:"reward_interval"`
}

type WithdrawMsg struct {
	Amount sdkmath.Int `json:"amount"`
}

// RecordSelector addresses a stake record of the caller either by position
// or by its stable id. Exactly one must be set.
type RecordSelector struct {
	Index *uint64 `json:"index,omitempty"`
	ID    *uint64 `json:"id,omitempty"`
}

func ByIndex(index uint64) *RecordSelector {
	return &RecordSelector{Index: &index}
}

func ByID(id uint64) *RecordSelector {
	return &RecordSelector{ID: &id}
}

// Cw20ReceiveMsg is the deposit notification pushed by the stake token.
// Msg holds a JSON encoded ReceiveMsg, base64 on the wire.
type Cw20ReceiveMsg struct {
	Sender string      `json:"sender"`
	Amount sdkmath.Int `json:"amount"`
	Msg    []byte      `json:"msg"`
}

type ReceiveMsg struct {
	Stake *StakeMsg `json:"stake,omitempty"`
}

type StakeMsg struct {
	TierIndex uint64 `json:"tier_index"`
}

// NewStakeReceiveMsg builds the deposit notification payload for a stake
// with the given tier label.
func NewStakeReceiveMsg(sender string, amount sdkmath.Int, tierIndex uint64) (*Cw20ReceiveMsg, error) {
	payload, err := json.Marshal(ReceiveMsg{Stake: &StakeMsg{TierIndex: tierIndex}})
	if err != nil {
		return nil, err
	}

	return &Cw20ReceiveMsg{
		Sender: sender,
		Amount: amount,
		Msg:    payload,
	}, nil
}

type ConfigResponse = Config

type StakerResponse struct {
	Address string        `json:"address"`
	Records []StakeRecord `json:"records"`
}

type TotalsResponse struct {
	Stakers        int         `json:"stakers"`
	Records        int         `json:"records"`
	TotalPrincipal sdkmath.Int `json:"total_principal"`
}
