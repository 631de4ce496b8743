package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTour(t *testing.T) *Tour {
	t.Helper()

	tour, err := NewTour("The Forest Hiker", 5, 25, DifficultyEasy, 397, "Breathtaking hike", "tour-1-cover.jpg")
	require.NoError(t, err)
	return tour
}

func TestNewTour(t *testing.T) {
	t.Parallel()

	tour := validTour(t)

	assert.Equal(t, 4.5, tour.RatingAverage, "new tours start at the default rating")
	assert.Equal(t, 0, tour.RatingQuantity)
	assert.False(t, tour.CreatedAt.IsZero())
}

func TestTour_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Tour)
		wantErr error
	}{
		{"missing name", func(tr *Tour) { tr.Name = "" }, ErrEmptyTourName},
		{"zero duration", func(tr *Tour) { tr.Duration = 0 }, ErrInvalidDuration},
		{"zero group size", func(tr *Tour) { tr.MaxGroupSize = 0 }, ErrInvalidGroupSize},
		{"unknown difficulty", func(tr *Tour) { tr.Difficulty = "impossible" }, ErrInvalidDifficulty},
		{"rating above scale", func(tr *Tour) { tr.RatingAverage = 5.5 }, ErrInvalidRating},
		{"zero price", func(tr *Tour) { tr.Price = 0 }, ErrInvalidPrice},
		{"discount at or above price", func(tr *Tour) { tr.PriceDiscount = tr.Price }, ErrInvalidDiscount},
		{"missing summary", func(tr *Tour) { tr.Summary = "" }, ErrEmptySummary},
		{"missing cover image", func(tr *Tour) { tr.ImageCover = "" }, ErrEmptyCoverImage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tour := validTour(t)
			tt.mutate(tour)
			assert.ErrorIs(t, tour.Validate(), tt.wantErr)
		})
	}

	t.Run("discount below price is fine", func(t *testing.T) {
		t.Parallel()

		tour := validTour(t)
		tour.PriceDiscount = tour.Price - 100
		assert.NoError(t, tour.Validate())
	})
}
