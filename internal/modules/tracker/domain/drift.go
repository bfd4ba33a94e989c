package domain

import (
	"fmt"
	"math"
	"time"
)

// DriftResult is the backend's judgement of how far recent activities
// stray from the target career.
type DriftResult struct {
	// HasScore is false when the backend omitted on_track_score, e.g. for an
	// empty activity list or an unknown career.
	HasScore      bool
	OnTrackScore  float64
	DriftScore    float64
	IsDrifting    bool
	RelevantRatio float64
	Status        string
	Message       string
	Suggestions   []string
	Error         string
	AnalyzedAt    time.Time
}

// Percent renders the on-track score as a whole percentage, 0.42 -> "42%".
func (r DriftResult) Percent() string {
	return fmt.Sprintf("%d%%", int(math.Round(r.OnTrackScore*100)))
}

// DriftSequencer numbers drift requests so that a slow, older response
// cannot overwrite a newer one. Not safe for concurrent use.
type DriftSequencer struct {
	issued  uint64
	applied uint64
}

func (s *DriftSequencer) Issue() uint64 {
	s.issued++
	return s.issued
}

// Apply reports whether the response for seq is newer than the last one
// applied, and records it if so.
func (s *DriftSequencer) Apply(seq uint64) bool {
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	return true
}

// Pending reports whether a request newer than the last applied one is in flight.
func (s DriftSequencer) Pending() bool {
	return s.issued > s.applied
}
