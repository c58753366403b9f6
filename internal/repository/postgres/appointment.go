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

const appointmentIDPrefix = "APT"

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, appointmentIDLockKey); err != nil {
		return fmt.Errorf("failed to lock appointment id sequence: %w", err)
	}

	// Next id follows the last one handed out, same scheme as patient ids.
	var lastID string
	err = tx.GetContext(ctx, &lastID, `
		SELECT appointment_id FROM appointment
		ORDER BY created_at DESC, appointment_id DESC
		LIMIT 1
	`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read last appointment id: %w", err)
	}

	appointment.ID = idgen.Next(appointmentIDPrefix, lastID)
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err = tx.ExecContext(ctx, `
		INSERT INTO appointment (
			appointment_id, patient_id, practitioner_id,
			date_time, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		appointment.ID,
		appointment.PatientID,
		appointment.PractitionerID,
		appointment.ScheduledAt,
		appointment.Status,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return tx.Commit()
}

func (r *appointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, practitioner_id,
			   date_time, status, notes, created_at, updated_at
		FROM appointment
		WHERE appointment_id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, newScheduledAt *time.Time) (*model.Appointment, error) {
	query := `
		UPDATE appointment
		SET status = $1,
			date_time = COALESCE($2, date_time),
			updated_at = $3
		WHERE appointment_id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, newScheduledAt, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.NewNotFound("appointment", nil)
	}

	return r.Get(ctx, id)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, practitioner_id,
			   date_time, status, notes, created_at, updated_at
		FROM appointment
		WHERE patient_id = $1
		ORDER BY date_time DESC, created_at ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list appointments by patient: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPractitioner(ctx context.Context, practitionerID string) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, practitioner_id,
			   date_time, status, notes, created_at, updated_at
		FROM appointment
		WHERE practitioner_id = $1
		ORDER BY date_time DESC, created_at ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, practitionerID); err != nil {
		return nil, fmt.Errorf("failed to list appointments by practitioner: %w", err)
	}
	return appointments, nil
}
