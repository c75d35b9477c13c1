package queue

import (
	"github.com/google/uuid"
)

const (
	EventSchemaVersion = 0
)

// TransferIntentEvent asks the settlement worker to move Amount of Denom from
// the custody account to Recipient.
type TransferIntentEvent struct {
	SchemaVersion   int    `json:"schema_version"`
	EventID         string `json:"event_id"`
	Action          string `json:"action"`
	ContractAddress string `json:"contract_address"`
	Denom           string `json:"denom"`
	Amount          string `json:"amount"`
	Recipient       string `json:"recipient"`
	BlockTime       uint64 `json:"block_time"`
	TraceID         string `json:"trace_id,omitempty"`
}

func NewTransferIntentEvent(
	action, contractAddress, denom, amount, recipient string, blockTime uint64, traceID string,
) *TransferIntentEvent {
	return &TransferIntentEvent{
		SchemaVersion:   EventSchemaVersion,
		EventID:         uuid.NewString(),
		Action:          action,
		ContractAddress: contractAddress,
		Denom:           denom,
		Amount:          amount,
		Recipient:       recipient,
		BlockTime:       blockTime,
		TraceID:         traceID,
	}
}

type AuditAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AuditEvent records the attributes emitted by a successful call.
type AuditEvent struct {
	SchemaVersion int              `json:"schema_version"`
	EventID       string           `json:"event_id"`
	Action        string           `json:"action"`
	Sender        string           `json:"sender"`
	BlockTime     uint64           `json:"block_time"`
	Attributes    []AuditAttribute `json:"attributes"`
	TraceID       string           `json:"trace_id,omitempty"`
}

func NewAuditEvent(action, sender string, blockTime uint64, attributes []AuditAttribute, traceID string) *AuditEvent {
	return &AuditEvent{
		SchemaVersion: EventSchemaVersion,
		EventID:       uuid.NewString(),
		Action:        action,
		Sender:        sender,
		BlockTime:     blockTime,
		Attributes:    attributes,
		TraceID:       traceID,
	}
}
