package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID issues random v4 UUIDs.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Static always returns the same value.
type Static string

func (s Static) New() string {
	return string(s)
}
