package messaging

import (
	"context"
	"time"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Channel the scheduling service publishes appointment lifecycle
// events to.
const ChannelAppointments = "appointments"

// Appointment event types.
const (
	EventAppointmentBooked      = "appointment.booked"
	EventAppointmentAccepted    = "appointment.accepted"
	EventAppointmentDeclined    = "appointment.declined"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAvailabilityChanged    = "practitioner.availability_changed"
)

// AppointmentEvent is the payload published for every committed
// scheduling state change.
type AppointmentEvent struct {
	Type           string    `json:"type"`
	AppointmentID  string    `json:"appointment_id,omitempty"`
	PatientID      string    `json:"patient_id,omitempty"`
	PractitionerID string    `json:"practitioner_id,omitempty"`
	Status         string    `json:"status,omitempty"`
	ScheduledAt    time.Time `json:"scheduled_at,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
