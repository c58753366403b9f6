// Package practitioner implements the practitioner directory: roster
// reads and the availability flag gating new bookings.
package practitioner

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	"github.com/Michael4-fab/MedicalLabSimulator/internal/repository"
)

const (
	availabilityTTL = 30 * time.Second
	cleanupInterval = 5 * time.Minute
)

// Service wraps the practitioner repository with a short-lived read
// cache for availability lookups. Writes invalidate the cached entry,
// so a flip is visible to the next booking immediately. It satisfies
// repository.PractitionerRepository and is handed to the scheduling
// coordinator in place of the raw repository.
type Service struct {
	repo   repository.PractitionerRepository
	cache  *gocache.Cache
	logger *zerolog.Logger
}

func NewService(repo repository.PractitionerRepository, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  gocache.New(availabilityTTL, cleanupInterval),
		logger: logger,
	}
}

func availabilityKey(id string) string {
	return "availability:" + id
}

func (s *Service) Get(ctx context.Context, id string) (*model.Practitioner, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetAvailability(ctx context.Context, id string) (model.Availability, error) {
	if cached, ok := s.cache.Get(availabilityKey(id)); ok {
		return cached.(model.Availability), nil
	}

	availability, err := s.repo.GetAvailability(ctx, id)
	if err != nil {
		return "", err
	}

	s.cache.Set(availabilityKey(id), availability, availabilityTTL)
	return availability, nil
}

func (s *Service) SetAvailability(ctx context.Context, id string, availability model.Availability) error {
	if err := s.repo.SetAvailability(ctx, id, availability); err != nil {
		return err
	}

	s.cache.Delete(availabilityKey(id))
	s.logger.Info().
		Str("practitioner_id", id).
		Str("availability", string(availability)).
		Msg("practitioner availability updated")
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Practitioner, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListAvailable(ctx context.Context) ([]*model.Practitioner, error) {
	return s.repo.ListAvailable(ctx)
}
