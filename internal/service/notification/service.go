package notification

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/email"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/metrics"
)

const signature = "FAB'S MEDICAL LAB"

// Service dispatches decision outcome notifications to patients. All
// delivery is best effort: the returned error is a diagnostic for the
// caller's warning log, never a reason to fail the decision itself.
type Service interface {
	NotifyDecision(ctx context.Context, apt *model.Appointment, decision model.Decision, practitionerName, recipient string) error
}

type service struct {
	sender  email.Sender
	metrics *metrics.Metrics
	logger  *zerolog.Logger
}

func NewService(sender email.Sender, m *metrics.Metrics, logger *zerolog.Logger) Service {
	return &service{
		sender:  sender,
		metrics: m,
		logger:  logger,
	}
}

// BuildDecisionNotification constructs the subject and body for a
// decision outcome. Exposed so the content contract is testable on its
// own.
func BuildDecisionNotification(apt *model.Appointment, decision model.Decision, practitionerName, recipient string) model.NotificationRequest {
	req := model.NotificationRequest{Recipient: recipient}

	switch decision {
	case model.DecisionAccept:
		req.Subject = "Appointment Accepted"
		req.Body = fmt.Sprintf(
			"Hello,\n\nYour appointment (ID: %s) has been accepted by Dr. %s.\n\n%s",
			apt.ID, practitionerName, signature,
		)
	case model.DecisionDecline:
		req.Subject = "Appointment Declined"
		req.Body = fmt.Sprintf(
			"Hello,\n\nYour appointment (ID: %s) was declined. You are welcome to book a new appointment at a different time.\n\n%s",
			apt.ID, signature,
		)
	case model.DecisionReschedule:
		req.Subject = "Appointment Rescheduled"
		req.Body = fmt.Sprintf(
			"Hello,\n\nYour appointment (ID: %s) has been rescheduled to: %s.\n\n%s",
			apt.ID, apt.ScheduledAt.Format(model.TimeLayout), signature,
		)
	}

	return req
}

func (s *service) NotifyDecision(ctx context.Context, apt *model.Appointment, decision model.Decision, practitionerName, recipient string) error {
	// A patient without an email address is simply not notified.
	if recipient == "" {
		s.logger.Debug().
			Str("appointment_id", apt.ID).
			Msg("patient has no email address, skipping notification")
		return nil
	}

	req := BuildDecisionNotification(apt, decision, practitionerName, recipient)
	if req.Subject == "" {
		return apperrors.NewNotification(fmt.Sprintf("no notification defined for decision %q", decision), nil)
	}

	if s.metrics != nil && s.metrics.NotificationLatency != nil {
		timer := prometheus.NewTimer(s.metrics.NotificationLatency)
		defer timer.ObserveDuration()
	}

	err := s.sender.Send(ctx, email.Message{
		To:      req.Recipient,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		if s.metrics != nil && s.metrics.NotificationFailures != nil {
			s.metrics.NotificationFailures.Inc()
		}
		return apperrors.NewNotification("failed to notify patient", err)
	}

	return nil
}
