package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.December, 31)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(raw) != `"2026-12-31"` {
		t.Errorf("Expected \"2026-12-31\" but got %s", raw)
	}

	var parsed Date
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Errorf("Expected %v but got %v", d, parsed)
	}
}

func TestDateUnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"31/12/2026"`), &d); err == nil {
		t.Errorf("Expected error for non YYYY-MM-DD input")
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Errorf("Unexpected error for null: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("Expected zero date for null input")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time.Time failed: %v", err)
	}
	if d.String() != "2025-03-05" {
		t.Errorf("Expected 2025-03-05 but got %s", d)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("2025-03-05")); err != nil {
		t.Fatalf("Scan []byte failed: %v", err)
	}
	if !fromBytes.Equal(d.Time) {
		t.Errorf("Expected %v but got %v", d, fromBytes)
	}

	if err := d.Scan(42); err == nil {
		t.Errorf("Expected error scanning int")
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range []string{StatusPending, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("Expected %q to be a valid status", s)
		}
	}
	if ValidStatus("in_progress") {
		t.Errorf("Expected in_progress to be invalid")
	}

	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("Expected %q to be a valid priority", p)
		}
	}
	if ValidPriority("urgent") {
		t.Errorf("Expected urgent to be invalid")
	}
}
