package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-29")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2025-12-29" {
		t.Errorf("got %s, want 2025-12-29", d)
	}

	if _, err := ParseDate("29/12/2025"); err == nil {
		t.Error("expected error for non-ISO format")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	late := time.Date(2025, 12, 29, 23, 59, 59, 0, time.UTC)
	early := time.Date(2025, 12, 29, 0, 0, 1, 0, time.UTC)
	if !DateOf(late).Equal(DateOf(early)) {
		t.Error("same calendar day should compare equal regardless of time")
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2025-12-29", "2025-12-31", 2},
		{"2025-12-31", "2025-12-29", -2},
		{"2025-12-29", "2025-12-29", 0},
		{"2025-12-29", "2026-01-05", 7}, // Monday to Monday, across year end
		{"2025-02-26", "2025-03-02", 4}, // across February in a non-leap year
	}
	for _, tt := range tests {
		from, _ := ParseDate(tt.from)
		to, _ := ParseDate(tt.to)
		if got := from.DaysUntil(to); got != tt.want {
			t.Errorf("DaysUntil(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAddDays(t *testing.T) {
	d, _ := ParseDate("2025-12-30")
	if got := d.AddDays(3).String(); got != "2026-01-02" {
		t.Errorf("AddDays(3) = %s, want 2026-01-02", got)
	}
	if got := d.AddDays(-30).String(); got != "2025-11-30" {
		t.Errorf("AddDays(-30) = %s, want 2025-11-30", got)
	}
}

func TestMonth(t *testing.T) {
	d, _ := ParseDate("2025-03-07")
	if got := d.Month(); got != "2025-03" {
		t.Errorf("Month() = %s, want 2025-03", got)
	}
}

func TestDateJSON(t *testing.T) {
	d, _ := ParseDate("2025-12-29")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2025-12-29"` {
		t.Errorf("Marshal = %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Error("roundtrip mismatch")
	}

	var zero Date
	if err := json.Unmarshal([]byte("null"), &zero); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if !zero.IsZero() {
		t.Error("null should decode to the zero date")
	}
}

func TestRangesOverlap(t *testing.T) {
	d := func(s string) Date {
		parsed, err := ParseDate(s)
		if err != nil {
			t.Fatalf("bad date %s: %v", s, err)
		}
		return parsed
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint before", "2025-12-01", "2025-12-05", "2025-12-06", "2025-12-10", false},
		{"disjoint after", "2025-12-11", "2025-12-15", "2025-12-06", "2025-12-10", false},
		{"touching endpoints overlap", "2025-12-01", "2025-12-05", "2025-12-05", "2025-12-10", true},
		{"contained", "2025-12-06", "2025-12-08", "2025-12-05", "2025-12-10", true},
		{"identical", "2025-12-05", "2025-12-10", "2025-12-05", "2025-12-10", true},
		{"partial", "2025-12-08", "2025-12-12", "2025-12-05", "2025-12-10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(d(tt.aStart), d(tt.aEnd), d(tt.bStart), d(tt.bEnd))
			if got != tt.want {
				t.Errorf("RangesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}
