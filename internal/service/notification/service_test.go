package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/email"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

type stubSender struct {
	err   error
	calls int
	last  email.Message
}

func (s *stubSender) Send(_ context.Context, msg email.Message) error {
	s.calls++
	s.last = msg
	return s.err
}

func testAppointment() *model.Appointment {
	return &model.Appointment{
		ID:             "APT001",
		PatientID:      "PATIENT001",
		PractitionerID: "DR-AKIN",
		ScheduledAt:    time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:         model.AppointmentStatusAccepted,
	}
}

func newTestService(sender email.Sender) Service {
	logger := zerolog.Nop()
	return NewService(sender, nil, &logger)
}

func TestBuildDecisionNotification(t *testing.T) {
	apt := testAppointment()

	tests := []struct {
		name        string
		decision    model.Decision
		wantSubject string
		wantInBody  []string
	}{
		{
			name:        "accept references id and practitioner",
			decision:    model.DecisionAccept,
			wantSubject: "Appointment Accepted",
			wantInBody:  []string{"APT001", "Dr. Akin Fabode"},
		},
		{
			name:        "decline invites rebooking",
			decision:    model.DecisionDecline,
			wantSubject: "Appointment Declined",
			wantInBody:  []string{"APT001", "book a new appointment"},
		},
		{
			name:        "reschedule states the new time",
			decision:    model.DecisionReschedule,
			wantSubject: "Appointment Rescheduled",
			wantInBody:  []string{"APT001", "2030-01-01 10:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildDecisionNotification(apt, tt.decision, "Akin Fabode", "pat@example.com")
			assert.Equal(t, tt.wantSubject, req.Subject)
			assert.Equal(t, "pat@example.com", req.Recipient)
			for _, want := range tt.wantInBody {
				assert.Contains(t, req.Body, want)
			}
		})
	}
}

func TestNotifyDecision_SkipsEmptyRecipient(t *testing.T) {
	sender := &stubSender{}
	svc := newTestService(sender)

	err := svc.NotifyDecision(context.Background(), testAppointment(), model.DecisionAccept, "Akin Fabode", "")
	require.NoError(t, err)
	assert.Equal(t, 0, sender.calls)
}

func TestNotifyDecision_SendsEmail(t *testing.T) {
	sender := &stubSender{}
	svc := newTestService(sender)

	err := svc.NotifyDecision(context.Background(), testAppointment(), model.DecisionAccept, "Akin Fabode", "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "pat@example.com", sender.last.To)
	assert.Equal(t, "Appointment Accepted", sender.last.Subject)
}

func TestNotifyDecision_FailureIsDiagnosticOnly(t *testing.T) {
	sender := &stubSender{err: errors.New("all transports failed")}
	svc := newTestService(sender)

	err := svc.NotifyDecision(context.Background(), testAppointment(), model.DecisionDecline, "Akin Fabode", "pat@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotification(err))
}
