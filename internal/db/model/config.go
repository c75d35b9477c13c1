package model

const (
	// ConfigDocumentID is the key of the singleton ledger configuration.
	ConfigDocumentID = "config"
	// ContractInfoDocumentID is the key of the singleton contract name/version record.
	ContractInfoDocumentID = "contract_info"
)

type DenomDocument struct {
	Kind string `bson:"kind"`
	Ref  string `bson:"ref"`
}

type TierDocument struct {
	// Duration is the minimum elapsed time in seconds.
	Duration uint64 `bson:"duration"`
	Rate     uint64 `bson:"rate"`
}

type ConfigDocument struct {
	ID             string         `bson:"_id"`
	Owner          string         `bson:"owner"`
	StakeToken     DenomDocument  `bson:"stake_token"`
	RewardToken    DenomDocument  `bson:"reward_token"`
	Tiers          []TierDocument `bson:"tiers"`
	RewardInterval uint64         `bson:"reward_interval"`
	Enabled        bool           `bson:"enabled"`
}

type ContractInfoDocument struct {
	ID       string `bson:"_id"`
	Contract string `bson:"contract"`
	Version  string `bson:"version"`
}

func NewContractInfoDocument(contract, version string) *ContractInfoDocument {
	return &ContractInfoDocument{
		ID:       ContractInfoDocumentID,
		Contract: contract,
		Version:  version,
	}
}
