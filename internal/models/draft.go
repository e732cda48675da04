package models

import "strconv"

// SetDraft is a session-local, user-editable set. Reps and weight are kept
// as raw strings; validation happens only when a draft is committed for
// persistence.
type SetDraft struct {
	ID          string     `json:"id"`
	Reps        string     `json:"reps"`
	Weight      string     `json:"weight"`
	WeightUnit  WeightUnit `json:"weight_unit"`
	IsCompleted bool       `json:"is_completed"`
}

// ExerciseDraft is an exercise inside an in-progress session. ID is a
// session-local identity, distinct from the catalog document id.
type ExerciseDraft struct {
	ID        string     `json:"id"`
	CatalogID string     `json:"catalog_id"`
	Name      string     `json:"name"`
	Sets      []SetDraft `json:"sets"`
}

// Commit converts a draft into a persistable RecordSet. It returns ok=false
// for drafts that are not eligible: incomplete, or missing reps or weight.
// Eligible drafts with unparseable numbers commit as zero values; the
// session layer is deliberately permissive and this is the single place
// that leniency lives.
func (d SetDraft) Commit() (RecordSet, bool) {
	if !d.IsCompleted || d.Reps == "" || d.Weight == "" {
		return RecordSet{}, false
	}

	reps, err := strconv.Atoi(d.Reps)
	if err != nil {
		reps = 0
	}
	weight, err := strconv.ParseFloat(d.Weight, 64)
	if err != nil {
		weight = 0
	}

	return RecordSet{Reps: reps, Weight: weight, WeightUnit: d.WeightUnit}, true
}

// CommittedSets returns the exercise's persistable sets in draft order.
func (e ExerciseDraft) CommittedSets() []RecordSet {
	var out []RecordSet
	for _, s := range e.Sets {
		if set, ok := s.Commit(); ok {
			out = append(out, set)
		}
	}
	return out
}
