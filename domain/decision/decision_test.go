package decision

import (
	"testing"
	"time"
)

func TestAggregate(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	decisions := []Decision{
		{Outcome: OutcomeValid},
		{Outcome: OutcomeValid},
		{Outcome: OutcomeInvalid, Reason: "action_not_found"},
		{Outcome: OutcomeInvalid, Reason: "missing_required_parameter"},
		{Outcome: OutcomeInvalid, Reason: "missing_required_parameter"},
	}

	s := Aggregate(decisions, from, to)

	if s.Total != 5 {
		t.Errorf("Total = %d, want 5", s.Total)
	}
	if s.Valid != 2 {
		t.Errorf("Valid = %d, want 2", s.Valid)
	}
	if s.Invalid != 3 {
		t.Errorf("Invalid = %d, want 3", s.Invalid)
	}
	if s.ByReason["missing_required_parameter"] != 2 {
		t.Errorf("ByReason[missing_required_parameter] = %d, want 2", s.ByReason["missing_required_parameter"])
	}
	if s.ByReason["action_not_found"] != 1 {
		t.Errorf("ByReason[action_not_found] = %d, want 1", s.ByReason["action_not_found"])
	}
	if !s.From.Equal(from) || !s.To.Equal(to) {
		t.Errorf("period = [%v, %v), want [%v, %v)", s.From, s.To, from, to)
	}
}

func TestAggregate_Empty(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)

	s := Aggregate(nil, from, to)

	if s.Total != 0 || s.Valid != 0 || s.Invalid != 0 {
		t.Errorf("empty aggregate = %+v, want zero counts", s)
	}
	if s.ByReason != nil {
		t.Errorf("ByReason = %v, want nil", s.ByReason)
	}
}

func TestMerge(t *testing.T) {
	day1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	day3 := day2.Add(24 * time.Hour)

	a := Summary{
		From: day1, To: day2,
		Total: 3, Valid: 2, Invalid: 1,
		ByReason: map[string]int64{"action_not_found": 1},
	}
	b := Summary{
		From: day2, To: day3,
		Total: 4, Valid: 1, Invalid: 3,
		ByReason: map[string]int64{
			"action_not_found":           1,
			"missing_required_parameter": 2,
		},
	}

	m := Merge(a, b)

	if m.Total != 7 {
		t.Errorf("Total = %d, want 7", m.Total)
	}
	if m.Valid != 3 {
		t.Errorf("Valid = %d, want 3", m.Valid)
	}
	if m.Invalid != 4 {
		t.Errorf("Invalid = %d, want 4", m.Invalid)
	}
	if m.ByReason["action_not_found"] != 2 {
		t.Errorf("ByReason[action_not_found] = %d, want 2", m.ByReason["action_not_found"])
	}
	if !m.From.Equal(day1) || !m.To.Equal(day3) {
		t.Errorf("period = [%v, %v), want [%v, %v)", m.From, m.To, day1, day3)
	}
}

func TestIsValid(t *testing.T) {
	if !(Decision{Outcome: OutcomeValid}).IsValid() {
		t.Error("IsValid() = false for a valid outcome")
	}
	if (Decision{Outcome: OutcomeInvalid}).IsValid() {
		t.Error("IsValid() = true for an invalid outcome")
	}
	if (Decision{}).IsValid() {
		t.Error("IsValid() = true for an empty outcome")
	}
}
