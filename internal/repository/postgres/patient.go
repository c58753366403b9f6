package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
	"github.com/Michael4-fab/MedicalLabSimulator/pkg/idgen"
)

const patientIDPrefix = "PATIENT"

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, patientIDLockKey); err != nil {
		return fmt.Errorf("failed to lock patient id sequence: %w", err)
	}

	var lastID string
	err = tx.GetContext(ctx, &lastID, `
		SELECT patient_id FROM patients
		ORDER BY created_at DESC, patient_id DESC
		LIMIT 1
	`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read last patient id: %w", err)
	}

	patient.ID = idgen.Next(patientIDPrefix, lastID)
	patient.CreatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO patients (patient_id, full_name, age, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		patient.ID,
		patient.FullName,
		patient.Age,
		patient.Email,
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	return tx.Commit()
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	query := `
		SELECT patient_id, full_name, age, email, created_at
		FROM patients
		WHERE patient_id = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT patient_id, full_name, age, email, created_at
		FROM patients
		ORDER BY patient_id ASC
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
