package model

import (
	"time"
)

// TimeLayout is the fixed minute-precision format every date-time
// crosses the API boundary in.
const TimeLayout = "2006-01-02 15:04"

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "Pending"
	AppointmentStatusAccepted    AppointmentStatus = "Accepted"
	AppointmentStatusDeclined    AppointmentStatus = "Declined"
	AppointmentStatusRescheduled AppointmentStatus = "Rescheduled"
	AppointmentStatusCancelled   AppointmentStatus = "Cancelled"
)

// IsTerminal reports whether no further transition is defined from s.
// Rescheduled re-enters the decision flow and is deliberately not
// terminal.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusAccepted, AppointmentStatusDeclined, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Decision string

const (
	DecisionAccept     Decision = "accept"
	DecisionDecline    Decision = "decline"
	DecisionReschedule Decision = "reschedule"
)

type Appointment struct {
	ID             string            `db:"appointment_id" json:"appointment_id"`
	PatientID      string            `db:"patient_id" json:"patient_id"`
	PractitionerID string            `db:"practitioner_id" json:"practitioner_id"`
	ScheduledAt    time.Time         `db:"date_time" json:"date_time"`
	Status         AppointmentStatus `db:"status" json:"status"`
	Notes          string            `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updated_at"`
}

type BookAppointmentRequest struct {
	PatientID      string `json:"patient_id" validate:"required"`
	PractitionerID string `json:"practitioner_id" validate:"required"`
	DateTime       string `json:"date_time" validate:"required"`
	Notes          string `json:"notes" validate:"max=1000"`
}

type DecisionRequest struct {
	Decision    Decision `json:"decision" validate:"required,oneof=accept decline reschedule"`
	NewDateTime string   `json:"new_date_time"`
}
