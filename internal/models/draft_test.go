package models

import "testing"

// TestSetDraftCommit verifies the eligibility gate and the deliberate
// zero-fallback for unparseable numbers.
func TestSetDraftCommit(t *testing.T) {
	tests := []struct {
		name   string
		draft  SetDraft
		wantOK bool
		want   RecordSet
	}{
		{
			"completed with values",
			SetDraft{Reps: "10", Weight: "50.5", WeightUnit: UnitKg, IsCompleted: true},
			true,
			RecordSet{Reps: 10, Weight: 50.5, WeightUnit: UnitKg},
		},
		{
			"incomplete",
			SetDraft{Reps: "10", Weight: "50", IsCompleted: false},
			false,
			RecordSet{},
		},
		{
			"missing reps",
			SetDraft{Reps: "", Weight: "50", IsCompleted: true},
			false,
			RecordSet{},
		},
		{
			"missing weight",
			SetDraft{Reps: "10", Weight: "", IsCompleted: true},
			false,
			RecordSet{},
		},
		{
			"unparseable commits as zero",
			SetDraft{Reps: "ten", Weight: "heavy", WeightUnit: UnitLbs, IsCompleted: true},
			true,
			RecordSet{Reps: 0, Weight: 0, WeightUnit: UnitLbs},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.draft.Commit()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("committed = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestCommittedSets verifies draft order is preserved and ineligible sets
// are dropped.
func TestCommittedSets(t *testing.T) {
	ex := ExerciseDraft{
		Sets: []SetDraft{
			{Reps: "5", Weight: "100", WeightUnit: UnitKg, IsCompleted: true},
			{Reps: "8", Weight: "90", WeightUnit: UnitKg, IsCompleted: false},
			{Reps: "3", Weight: "110", WeightUnit: UnitKg, IsCompleted: true},
		},
	}

	got := ex.CommittedSets()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Reps != 5 || got[1].Reps != 3 {
		t.Errorf("order = %+v", got)
	}
}
