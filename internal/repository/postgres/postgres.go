package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/repository"
)

// Advisory lock keys serializing sequential id assignment per table.
// Creates take the lock for the transaction so two concurrent inserts
// cannot read the same last id.
const (
	appointmentIDLockKey = 1001
	patientIDLockKey     = 1002
)

type appointmentRepository struct {
	db *sqlx.DB
}

type practitionerRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewPractitionerRepository(db *sqlx.DB) repository.PractitionerRepository {
	return &practitionerRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}
