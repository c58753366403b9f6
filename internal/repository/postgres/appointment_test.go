package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAppointmentRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(appointmentIDLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT appointment_id FROM appointment").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id"}).AddRow("APT007"))
	mock.ExpectExec("INSERT INTO appointment").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	apt := &model.Appointment{
		PatientID:      "PATIENT001",
		PractitionerID: "DR-AKIN",
		ScheduledAt:    time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:         model.AppointmentStatusPending,
	}

	err := repo.Create(context.Background(), apt)
	require.NoError(t, err)
	assert.Equal(t, "APT008", apt.ID)
	assert.False(t, apt.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_CreateFirstID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(appointmentIDLockKey).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT appointment_id FROM appointment").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO appointment").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	apt := &model.Appointment{
		PatientID:      "PATIENT001",
		PractitionerID: "DR-AKIN",
		ScheduledAt:    time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:         model.AppointmentStatusPending,
	}

	err := repo.Create(context.Background(), apt)
	require.NoError(t, err)
	assert.Equal(t, "APT001", apt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM appointment").
		WithArgs("APT404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "APT404")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentRepository_UpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec("UPDATE appointment").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateStatus(context.Background(), "APT404", model.AppointmentStatusAccepted, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentRepository_UpdateStatusReschedule(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	newTime := time.Date(2030, 2, 2, 14, 30, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE appointment").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows([]string{
		"appointment_id", "patient_id", "practitioner_id",
		"date_time", "status", "notes", "created_at", "updated_at",
	}).AddRow("APT001", "PATIENT001", "DR-AKIN", newTime, "Rescheduled", "", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM appointment").
		WithArgs("APT001").
		WillReturnRows(rows)

	apt, err := repo.UpdateStatus(context.Background(), "APT001", model.AppointmentStatusRescheduled, &newTime)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusRescheduled, apt.Status)
	assert.True(t, apt.ScheduledAt.Equal(newTime))
	assert.NoError(t, mock.ExpectationsWereMet())
}
