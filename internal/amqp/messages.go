package amqp

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ExpenseEvent is the message published when an expense changes. It
// carries only identifiers; consumers re-read the row, so a stale message
// never overwrites newer data.
type ExpenseEvent struct {
	Action     Action    `json:"action"`
	ExpenseID  int64     `json:"expense_id"`
	OwnerID    int64     `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewExpenseEvent(action Action, expenseID, ownerID int64) ExpenseEvent {
	return ExpenseEvent{
		Action:     action,
		ExpenseID:  expenseID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
}

func (e ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (ExpenseEvent, error) {
	var e ExpenseEvent
	err := json.Unmarshal(data, &e)
	return e, err
}
