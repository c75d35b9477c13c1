package staking

import (
	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
)

// Config is the singleton ledger configuration.
type Config struct {
	Owner       string      `json:"owner"`
	StakeToken  types.Denom `json:"stake_token"`
	RewardToken types.Denom `json:"reward_token"`
	Tiers       []Tier      `json:"tiers"`
	// RewardInterval is stored and reported but not used by accrual.
	RewardInterval uint64 `json:"reward_interval"`
	Enabled        bool   `json:"enabled"`
}

// StakeRecord is a single deposit. TierIndex is the label chosen at deposit
// time, accrual derives the tier from elapsed time.
type StakeRecord struct {
	ID             uint64      `json:"id"`
	TierIndex      uint64      `json:"tier_index"`
	OwnerAddress   string      `json:"owner_address"`
	Principal      sdkmath.Int `json:"principal"`
	AccruedReward  sdkmath.Int `json:"accrued_reward"`
	CheckpointTime uint64      `json:"checkpoint_time"`
}

// Staker is the ledger entry of one account. Records keep deposit order.
type Staker struct {
	Address      string
	NextRecordID uint64
	Records      []StakeRecord
}

// Env is supplied by the host for every call.
type Env struct {
	// BlockTime is the call timestamp in unix seconds.
	BlockTime uint64
	// ContractAddress is the custody account holding both tokens.
	ContractAddress string
}

type MessageInfo struct {
	Sender string
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TransferMsg instructs the host to move Amount of Denom from custody to
// Recipient after the call commits.
type TransferMsg struct {
	Denom     types.Denom `json:"denom"`
	Amount    sdkmath.Int `json:"amount"`
	Recipient string      `json:"recipient"`
}

type Response struct {
	Messages   []TransferMsg `json:"messages"`
	Attributes []Attribute   `json:"attributes"`
}

func NewResponse() *Response {
	return &Response{
		Messages:   []TransferMsg{},
		Attributes: []Attribute{},
	}
}

func (r *Response) AddMessage(msg TransferMsg) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Attribute returns the value of the first attribute with key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Action returns the value of the "action" attribute.
func (r *Response) Action() string {
	action, _ := r.Attribute(AttributeAction)
	return action
}

const (
	AttributeAction       = "action"
	AttributeAddress      = "address"
	AttributeAmount       = "amount"
	AttributeRewardAmount = "reward_amount"
	AttributeStakedAmount = "staked_amount"
	AttributeRecordID     = "record_id"
	AttributeTierIndex    = "tier_index"
)

const (
	ActionInstantiate     = "instantiate"
	ActionMigrate         = "migrate"
	ActionStake           = "stake"
	ActionClaimReward     = "claim_reward"
	ActionUnstake         = "unstake"
	ActionWithdrawReward  = "withdraw_reward"
	ActionWithdrawStake   = "withdraw_stake"
	ActionUpdateOwner     = "update_owner"
	ActionUpdateEnabled   = "update_enabled"
	ActionUpdateConstants = "update_constants"
)
