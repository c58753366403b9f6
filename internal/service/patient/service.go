package patient

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/repository"
)

type Service struct {
	repo   repository.PatientRepository
	logger *zerolog.Logger
}

func NewService(repo repository.PatientRepository, logger *zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterPatient creates a patient record; the store assigns the next
// PATIENT identifier.
func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	p := &model.Patient{
		FullName: req.FullName,
		Age:      req.Age,
		Email:    req.Email,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	s.logger.Info().
		Str("patient_id", p.ID).
		Msg("patient registered")

	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}
