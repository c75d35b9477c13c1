package model

// StakeRecordDocument stores amounts as decimal strings since they may exceed
// the int64 range bson supports natively.
type StakeRecordDocument struct {
	ID             uint64 `bson:"id"`
	TierIndex      uint64 `bson:"tier_index"`
	OwnerAddress   string `bson:"owner_address"`
	Principal      string `bson:"principal"`
	AccruedReward  string `bson:"accrued_reward"`
	CheckpointTime uint64 `bson:"checkpoint_time"`
}

type StakerDocument struct {
	Address string `bson:"_id"` // Primary key
	// NextRecordID is never decremented so ids are not reused after unstake.
	NextRecordID uint64                `bson:"next_record_id"`
	Records      []StakeRecordDocument `bson:"records"`
}

func NewStakerDocument(address string) *StakerDocument {
	return &StakerDocument{
		Address: address,
		Records: []StakeRecordDocument{},
	}
}
