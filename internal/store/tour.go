package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/query"
)

// DifficultyStats is one aggregation bucket of the catalog grouped by
// difficulty grade.
type DifficultyStats struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	NumTours   int64             `json:"numTours"`
	NumRatings int64             `json:"numRatings"`
	AvgRating  float64           `json:"avgRating"`
	AvgPrice   float64           `json:"avgPrice"`
	MinPrice   float64           `json:"minPrice"`
	MaxPrice   float64           `json:"maxPrice"`
}

// MonthlyPlanEntry counts the tours starting in one month of a year.
type MonthlyPlanEntry struct {
	Month    int      `json:"month"`
	NumTours int64    `json:"numTourStarts"`
	Tours    []string `json:"tours"`
}

// TourStore defines the persistence operations for tours. List and Count
// consume a query.Spec verbatim; translating it to the engine's native
// filter, sort, projection, and window is the implementation's job, and
// engine-side rejections (unknown fields and the like) pass through
// unwrapped.
type TourStore interface {
	// Create saves a new tour. Returns ErrTourNameExists when the name is
	// already taken.
	Create(ctx context.Context, tour *domain.Tour) error

	// GetByID retrieves a tour by ID. Returns ErrTourNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)

	// List returns the tours matching the spec's filter, in the spec's
	// order, restricted to the spec's projection and pagination window.
	// A window beyond the end of the collection yields an empty slice,
	// not an error.
	List(ctx context.Context, spec query.Spec) ([]*domain.Tour, error)

	// Count returns the number of tours matching the spec's filter,
	// ignoring its pagination window.
	Count(ctx context.Context, spec query.Spec) (int64, error)

	// Update replaces the stored document for tour.ID with the given
	// tour. Returns ErrTourNotFound if absent.
	Update(ctx context.Context, tour *domain.Tour) error

	// Delete removes a tour. Returns ErrTourNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// DifficultyStats aggregates the whole catalog by difficulty.
	DifficultyStats(ctx context.Context) ([]DifficultyStats, error)

	// MonthlyPlan aggregates tour start dates within the given year by
	// month, busiest month first.
	MonthlyPlan(ctx context.Context, year int) ([]MonthlyPlanEntry, error)
}
