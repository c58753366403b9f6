package repository

import (
	"context"
	"time"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository owns the canonical appointment records.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id string) (*model.Appointment, error)
		// UpdateStatus overwrites status and, when newScheduledAt is
		// non-nil, the scheduled time. Returns the updated record.
		UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, newScheduledAt *time.Time) (*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error)
		ListByPractitioner(ctx context.Context, practitionerID string) ([]*model.Appointment, error)
	}

	// PractitionerRepository owns practitioner records and their
	// availability flag.
	PractitionerRepository interface {
		Get(ctx context.Context, id string) (*model.Practitioner, error)
		GetAvailability(ctx context.Context, id string) (model.Availability, error)
		SetAvailability(ctx context.Context, id string, availability model.Availability) error
		List(ctx context.Context) ([]*model.Practitioner, error)
		ListAvailable(ctx context.Context) ([]*model.Practitioner, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id string) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
	}
)
