package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

func TestPatientRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(patientIDLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT patient_id FROM patients").
		WillReturnRows(sqlmock.NewRows([]string{"patient_id"}).AddRow("PATIENT007"))
	mock.ExpectExec("INSERT INTO patients").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	p := &model.Patient{FullName: "Ngozi Okafor", Age: 34, Email: "ngozi@example.com"}

	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "PATIENT008", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_CreateFirstID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(patientIDLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT patient_id FROM patients").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO patients").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	p := &model.Patient{FullName: "Ngozi Okafor", Age: 34, Email: "ngozi@example.com"}

	err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "PATIENT001", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM patients").
		WithArgs("PATIENT404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "PATIENT404")
	assert.True(t, apperrors.IsNotFound(err))
}
