package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/query"
	"github.com/tourbase/tours-api/internal/store"
)

// MockTourStore implements store.TourStore for testing
type MockTourStore struct {
	CreateFn          func(ctx context.Context, tour *domain.Tour) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
	ListFn            func(ctx context.Context, spec query.Spec) ([]*domain.Tour, error)
	CountFn           func(ctx context.Context, spec query.Spec) (int64, error)
	UpdateFn          func(ctx context.Context, tour *domain.Tour) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	DifficultyStatsFn func(ctx context.Context) ([]store.DifficultyStats, error)
	MonthlyPlanFn     func(ctx context.Context, year int) ([]store.MonthlyPlanEntry, error)

	// Default values used when functions aren't explicitly defined
	Tour  *domain.Tour
	Tours []*domain.Tour
	Total int64
	Err   error
}

var _ store.TourStore = (*MockTourStore)(nil)

// Create implements the store.TourStore interface
func (m *MockTourStore) Create(ctx context.Context, tour *domain.Tour) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tour)
	}
	return m.Err
}

// GetByID implements the store.TourStore interface
func (m *MockTourStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Tour, m.Err
}

// List implements the store.TourStore interface
func (m *MockTourStore) List(ctx context.Context, spec query.Spec) ([]*domain.Tour, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, spec)
	}
	return m.Tours, m.Err
}

// Count implements the store.TourStore interface
func (m *MockTourStore) Count(ctx context.Context, spec query.Spec) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, spec)
	}
	return m.Total, m.Err
}

// Update implements the store.TourStore interface
func (m *MockTourStore) Update(ctx context.Context, tour *domain.Tour) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tour)
	}
	return m.Err
}

// Delete implements the store.TourStore interface
func (m *MockTourStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// DifficultyStats implements the store.TourStore interface
func (m *MockTourStore) DifficultyStats(ctx context.Context) ([]store.DifficultyStats, error) {
	if m.DifficultyStatsFn != nil {
		return m.DifficultyStatsFn(ctx)
	}
	return nil, m.Err
}

// MonthlyPlan implements the store.TourStore interface
func (m *MockTourStore) MonthlyPlan(ctx context.Context, year int) ([]store.MonthlyPlanEntry, error) {
	if m.MonthlyPlanFn != nil {
		return m.MonthlyPlanFn(ctx, year)
	}
	return nil, m.Err
}
