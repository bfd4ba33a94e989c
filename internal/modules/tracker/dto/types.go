package dto

import "time"

type ProfileOutput struct {
	StudentID    string
	Name         string
	TargetCareer string
}

type ActivityOutput struct {
	ID        string
	StudentID string
	Name      string
	Category  string
	Type      string
	Timestamp time.Time
}

type AddActivityInput struct {
	Name     string
	Category string
}

type DriftInput struct {
	// TargetCareer falls back to the stored session when empty.
	TargetCareer string
	Activities   []ActivityOutput
}

type DriftOutput struct {
	HasScore      bool
	OnTrackScore  float64
	Percent       string
	DriftScore    float64
	IsDrifting    bool
	RelevantRatio float64
	Status        string
	Message       string
	Suggestions   []string
	Error         string
	AnalyzedAt    time.Time
}

type CategoryOutput struct {
	ID    string
	Label string
}
