// Package scheduling coordinates appointment booking, practitioner
// decisions and availability: the rules deciding whether a requested
// slot may be created and how an appointment's status evolves.
package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/repository"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/service/notification"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/messaging"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/metrics"
)

type Service struct {
	appointments  repository.AppointmentRepository
	practitioners repository.PractitionerRepository
	patients      repository.PatientRepository
	notifSvc      notification.Service
	broker        messaging.Broker
	clock         Clock
	metrics       *metrics.Metrics
	logger        *zerolog.Logger
	locks         *keyedMutex
}

func NewService(
	appointments repository.AppointmentRepository,
	practitioners repository.PractitionerRepository,
	patients repository.PatientRepository,
	notifSvc notification.Service,
	broker messaging.Broker,
	clock Clock,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) *Service {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Service{
		appointments:  appointments,
		practitioners: practitioners,
		patients:      patients,
		notifSvc:      notifSvc,
		broker:        broker,
		clock:         clock,
		metrics:       m,
		logger:        logger,
		locks:         newKeyedMutex(),
	}
}

// parseDateTime parses raw against the fixed minute-precision format.
// The local zone matches how the times were always entered and stored.
func parseDateTime(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(model.TimeLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewFormat("date and time must use format yyyy-MM-dd HH:mm", err)
	}
	return t, nil
}

// BookAppointment validates the requested slot and creates a Pending
// appointment. All validation happens before the single store write, so
// a rejected booking leaves no partial state. Overlapping bookings for
// the same practitioner and time are not rejected; only availability
// and the past-date rule gate creation.
func (s *Service) BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if s.metrics != nil {
		timer := prometheus.NewTimer(s.metrics.BookingLatency)
		defer timer.ObserveDuration()
	}

	scheduledAt, err := parseDateTime(req.DateTime)
	if err != nil {
		s.countBooking("format_rejected")
		return nil, err
	}

	// Booking exactly "now" is allowed; only strictly past times fail.
	if scheduledAt.Before(s.clock.Now()) {
		s.countBooking("past_rejected")
		return nil, apperrors.NewPastDate("cannot book an appointment in the past")
	}

	availability, err := s.practitioners.GetAvailability(ctx, req.PractitionerID)
	if err != nil && !apperrors.IsNotFound(err) {
		s.countBooking("error")
		return nil, err
	}
	// An unknown practitioner and an unavailable one get the same
	// rejection; the booking path does not distinguish them.
	if err != nil || !availability.IsAvailable() {
		s.countBooking("unavailable_rejected")
		return nil, apperrors.NewNotAvailable("this practitioner is not available")
	}

	apt := &model.Appointment{
		PatientID:      req.PatientID,
		PractitionerID: req.PractitionerID,
		ScheduledAt:    scheduledAt,
		Status:         model.AppointmentStatusPending,
		Notes:          req.Notes,
	}
	if err := s.appointments.Create(ctx, apt); err != nil {
		s.countBooking("error")
		return nil, err
	}

	s.countBooking("created")
	if s.metrics != nil {
		s.metrics.PendingDecisions.Inc()
	}
	s.publish(ctx, messaging.AppointmentEvent{
		Type:           messaging.EventAppointmentBooked,
		AppointmentID:  apt.ID,
		PatientID:      apt.PatientID,
		PractitionerID: apt.PractitionerID,
		Status:         string(apt.Status),
		ScheduledAt:    apt.ScheduledAt,
		OccurredAt:     s.clock.Now(),
	})

	s.logger.Info().
		Str("appointment_id", apt.ID).
		Str("patient_id", apt.PatientID).
		Str("practitioner_id", apt.PractitionerID).
		Time("scheduled_at", apt.ScheduledAt).
		Msg("appointment booked")

	return apt, nil
}

// ApplyDecision applies a practitioner decision to an appointment.
// Decisions may be re-applied to any fetched id, including ids already
// in a terminal state; the update simply overwrites the status. The
// patient notification is dispatched after the record lock is released
// and its failure never reverts the transition.
func (s *Service) ApplyDecision(ctx context.Context, appointmentID string, req *model.DecisionRequest) (*model.Appointment, error) {
	var newScheduledAt *time.Time
	var status model.AppointmentStatus

	switch req.Decision {
	case model.DecisionAccept:
		status = model.AppointmentStatusAccepted
	case model.DecisionDecline:
		status = model.AppointmentStatusDeclined
	case model.DecisionReschedule:
		if strings.TrimSpace(req.NewDateTime) == "" {
			return nil, apperrors.NewFormat("a new date and time is required to reschedule", nil)
		}
		t, err := parseDateTime(req.NewDateTime)
		if err != nil {
			return nil, err
		}
		newScheduledAt = &t
		status = model.AppointmentStatusRescheduled
	default:
		return nil, apperrors.NewValidation("unknown decision", nil)
	}

	apt, prior, err := s.transition(ctx, appointmentID, status, newScheduledAt)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DecisionsTotal.WithLabelValues(string(req.Decision)).Inc()
		// Rescheduled re-enters the decision flow, so an appointment
		// stays counted as pending until it first reaches a terminal
		// state; re-applying a decision to a terminal record must not
		// decrement again.
		if !prior.IsTerminal() && status.IsTerminal() {
			s.metrics.PendingDecisions.Dec()
		}
	}

	// Dispatch-after-commit: a slow or failing transport must not hold
	// the record lock or fail the decision.
	s.notify(ctx, apt, req.Decision)
	s.publish(ctx, messaging.AppointmentEvent{
		Type:           decisionEventType(req.Decision),
		AppointmentID:  apt.ID,
		PatientID:      apt.PatientID,
		PractitionerID: apt.PractitionerID,
		Status:         string(apt.Status),
		ScheduledAt:    apt.ScheduledAt,
		OccurredAt:     s.clock.Now(),
	})

	return apt, nil
}

// transition performs the fetch-and-update under the per-record lock
// and reports the status the appointment transitioned from.
func (s *Service) transition(ctx context.Context, appointmentID string, status model.AppointmentStatus, newScheduledAt *time.Time) (*model.Appointment, model.AppointmentStatus, error) {
	unlock := s.locks.lock("appointment:" + appointmentID)
	defer unlock()

	current, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, "", err
	}

	updated, err := s.appointments.UpdateStatus(ctx, appointmentID, status, newScheduledAt)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().
		Str("appointment_id", appointmentID).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("appointment status updated")

	return updated, current.Status, nil
}

func (s *Service) notify(ctx context.Context, apt *model.Appointment, decision model.Decision) {
	patient, err := s.patients.Get(ctx, apt.PatientID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("appointment_id", apt.ID).
			Str("patient_id", apt.PatientID).
			Msg("could not resolve patient for notification")
		return
	}

	practitionerName := apt.PractitionerID
	if p, err := s.practitioners.Get(ctx, apt.PractitionerID); err == nil {
		practitionerName = p.FullName
	}

	if err := s.notifSvc.NotifyDecision(ctx, apt, decision, practitionerName, patient.Email); err != nil {
		// Best effort only: the status transition stands.
		s.logger.Warn().Err(err).
			Str("appointment_id", apt.ID).
			Str("recipient", patient.Email).
			Msg("patient notification failed")
	}
}

// ToggleAvailability flips the practitioner's availability flag. The
// change gates subsequent bookings only; existing appointments are
// untouched.
func (s *Service) ToggleAvailability(ctx context.Context, practitionerID string) (model.Availability, error) {
	unlock := s.locks.lock("practitioner:" + practitionerID)
	defer unlock()

	current, err := s.practitioners.GetAvailability(ctx, practitionerID)
	if err != nil {
		return "", err
	}

	next := current.Toggled()
	if err := s.practitioners.SetAvailability(ctx, practitionerID, next); err != nil {
		return "", err
	}

	s.publish(ctx, messaging.AppointmentEvent{
		Type:           messaging.EventAvailabilityChanged,
		PractitionerID: practitionerID,
		Status:         string(next),
		OccurredAt:     s.clock.Now(),
	})

	return next, nil
}

// SetAvailability writes an explicit availability state. Idempotent.
func (s *Service) SetAvailability(ctx context.Context, practitionerID string, availability model.Availability) error {
	unlock := s.locks.lock("practitioner:" + practitionerID)
	defer unlock()

	return s.practitioners.SetAvailability(ctx, practitionerID, availability)
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

func (s *Service) ListPatientAppointments(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *Service) ListPractitionerAppointments(ctx context.Context, practitionerID string) ([]*model.Appointment, error) {
	return s.appointments.ListByPractitioner(ctx, practitionerID)
}

func (s *Service) countBooking(outcome string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) publish(ctx context.Context, event messaging.AppointmentEvent) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, messaging.ChannelAppointments, event); err != nil {
		s.logger.Warn().Err(err).Str("event", event.Type).Msg("failed to publish event")
	}
}

func decisionEventType(decision model.Decision) string {
	switch decision {
	case model.DecisionAccept:
		return messaging.EventAppointmentAccepted
	case model.DecisionDecline:
		return messaging.EventAppointmentDeclined
	case model.DecisionReschedule:
		return messaging.EventAppointmentRescheduled
	}
	return ""
}
