package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_UnmarshalCalendarDate(t *testing.T) {
	var e Expense
	if err := json.Unmarshal([]byte(`{"amount":49.5,"category":"Food","date":"2024-03-01"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Date.Year() != 2024 || e.Date.Month() != time.March || e.Date.Day() != 1 {
		t.Errorf("unexpected date: %v", e.Date)
	}
}

func TestDate_UnmarshalRFC3339(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-01T15:04:05Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Time-of-day is discarded
	if !d.Time.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %v", d.Time)
	}
}

func TestDate_MarshalRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-01T00:00:00Z"` {
		t.Errorf("unexpected marshal output: %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time.Equal(d.Time) {
		t.Errorf("round trip mismatch: %v != %v", back.Time, d.Time)
	}
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"yesterday"`), &d); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestDate_ScanTime(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, time.February, 10, 13, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !d.Time.Equal(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date: %v", d.Time)
	}
}

func TestExpense_WireFieldNames(t *testing.T) {
	e := Expense{ID: 3, Amount: 12.5, Category: CategoryFood, Description: "lunch", Date: NewDate(2024, time.March, 1), UserID: 9}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"_id", "amount", "category", "description", "date"} {
		if _, ok := out[field]; !ok {
			t.Errorf("missing wire field %q", field)
		}
	}
	// The owner must never appear on the wire
	if _, ok := out["user_id"]; ok {
		t.Error("user_id leaked into JSON")
	}
}
