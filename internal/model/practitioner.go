package model

import (
	"strings"
)

// Availability is the practitioner-level flag gating new bookings. The
// stored values are "Available" and "Unavailable"; comparisons are
// case-insensitive to match the values already in the wild.
type Availability string

const (
	Available   Availability = "Available"
	Unavailable Availability = "Unavailable"
)

func (a Availability) IsAvailable() bool {
	return strings.EqualFold(string(a), string(Available))
}

// Toggled returns the opposite availability state.
func (a Availability) Toggled() Availability {
	if a.IsAvailable() {
		return Unavailable
	}
	return Available
}

type Practitioner struct {
	ID           string       `db:"practitioner_id" json:"practitioner_id"`
	FullName     string       `db:"full_name" json:"full_name"`
	Specialty    string       `db:"specialty" json:"specialty"`
	Availability Availability `db:"availability" json:"availability"`
	Email        string       `db:"email" json:"email,omitempty"`
}

type SetAvailabilityRequest struct {
	Availability Availability `json:"availability" validate:"required,oneof=Available Unavailable"`
}
