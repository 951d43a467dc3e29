package amqp

import (
	"testing"
	"time"
)

func TestExpenseEventJSON(t *testing.T) {
	ev := NewExpenseEvent(ActionCreated, 7, 3)
	if ev.OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to be set")
	}

	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := ExpenseEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Action != ActionCreated || back.ExpenseID != 7 || back.OwnerID != 3 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if !back.OccurredAt.Equal(ev.OccurredAt.Truncate(time.Nanosecond)) {
		t.Fatalf("occurred_at mismatch: %v vs %v", back.OccurredAt, ev.OccurredAt)
	}
}

func TestExpenseEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := ExpenseEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
