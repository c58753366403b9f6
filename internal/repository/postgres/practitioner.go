package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

func (r *practitionerRepository) Get(ctx context.Context, id string) (*model.Practitioner, error) {
	query := `
		SELECT practitioner_id, full_name, specialty, availability, email
		FROM practitioner
		WHERE practitioner_id = $1
	`
	var practitioner model.Practitioner
	err := r.db.GetContext(ctx, &practitioner, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("practitioner", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get practitioner: %w", err)
	}
	return &practitioner, nil
}

func (r *practitionerRepository) GetAvailability(ctx context.Context, id string) (model.Availability, error) {
	query := `SELECT availability FROM practitioner WHERE practitioner_id = $1`

	var availability model.Availability
	err := r.db.GetContext(ctx, &availability, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NewNotFound("practitioner", err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get availability: %w", err)
	}
	return availability, nil
}

func (r *practitionerRepository) SetAvailability(ctx context.Context, id string, availability model.Availability) error {
	query := `UPDATE practitioner SET availability = $1 WHERE practitioner_id = $2`

	result, err := r.db.ExecContext(ctx, query, availability, id)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("practitioner", nil)
	}

	return nil
}

func (r *practitionerRepository) List(ctx context.Context) ([]*model.Practitioner, error) {
	query := `
		SELECT practitioner_id, full_name, specialty, availability, email
		FROM practitioner
	`
	var practitioners []*model.Practitioner
	if err := r.db.SelectContext(ctx, &practitioners, query); err != nil {
		return nil, fmt.Errorf("failed to list practitioners: %w", err)
	}
	return practitioners, nil
}

func (r *practitionerRepository) ListAvailable(ctx context.Context) ([]*model.Practitioner, error) {
	query := `
		SELECT practitioner_id, full_name, specialty, availability, email
		FROM practitioner
		WHERE LOWER(availability) = LOWER($1)
	`
	var practitioners []*model.Practitioner
	if err := r.db.SelectContext(ctx, &practitioners, query, model.Available); err != nil {
		return nil, fmt.Errorf("failed to list available practitioners: %w", err)
	}
	return practitioners, nil
}
