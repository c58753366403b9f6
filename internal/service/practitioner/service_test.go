package practitioner

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Michael4-fab/MedicalLabSimulator/internal/model"
	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

type fakePractitionerRepo struct {
	availability map[string]model.Availability
	getCalls     int
}

func newFakePractitionerRepo() *fakePractitionerRepo {
	return &fakePractitionerRepo{
		availability: map[string]model.Availability{
			"P1": model.Available,
		},
	}
}

func (r *fakePractitionerRepo) Get(ctx context.Context, id string) (*model.Practitioner, error) {
	a, ok := r.availability[id]
	if !ok {
		return nil, apperrors.NewNotFound("practitioner", nil)
	}
	return &model.Practitioner{ID: id, Availability: a}, nil
}

func (r *fakePractitionerRepo) GetAvailability(ctx context.Context, id string) (model.Availability, error) {
	r.getCalls++
	a, ok := r.availability[id]
	if !ok {
		return "", apperrors.NewNotFound("practitioner", nil)
	}
	return a, nil
}

func (r *fakePractitionerRepo) SetAvailability(ctx context.Context, id string, availability model.Availability) error {
	if _, ok := r.availability[id]; !ok {
		return apperrors.NewNotFound("practitioner", nil)
	}
	r.availability[id] = availability
	return nil
}

func (r *fakePractitionerRepo) List(ctx context.Context) ([]*model.Practitioner, error) {
	return nil, nil
}

func (r *fakePractitionerRepo) ListAvailable(ctx context.Context) ([]*model.Practitioner, error) {
	return nil, nil
}

func newTestService() (*Service, *fakePractitionerRepo) {
	repo := newFakePractitionerRepo()
	logger := zerolog.Nop()
	return NewService(repo, &logger), repo
}

func TestGetAvailability_CachesReads(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	a, err := svc.GetAvailability(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, model.Available, a)

	a, err = svc.GetAvailability(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, model.Available, a)

	assert.Equal(t, 1, repo.getCalls, "second read should come from the cache")
}

func TestSetAvailability_InvalidatesCache(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.GetAvailability(ctx, "P1")
	require.NoError(t, err)

	require.NoError(t, svc.SetAvailability(ctx, "P1", model.Unavailable))

	a, err := svc.GetAvailability(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, model.Unavailable, a, "flip must be visible immediately")
	assert.Equal(t, 2, repo.getCalls)
}

func TestGetAvailability_UnknownNotCached(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.GetAvailability(ctx, "P404")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.GetAvailability(ctx, "P404")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 2, repo.getCalls, "misses are never cached")
}
