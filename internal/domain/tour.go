package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common tour validation errors.
var (
	ErrEmptyTourID       = errors.New("tour ID cannot be empty")
	ErrEmptyTourName     = errors.New("tour must have a name")
	ErrInvalidDuration   = errors.New("tour must have a positive duration")
	ErrInvalidGroupSize  = errors.New("tour must have a positive group size")
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium, or difficult")
	ErrInvalidPrice      = errors.New("tour must have a positive price")
	ErrInvalidDiscount   = errors.New("price discount must be below the regular price")
	ErrEmptySummary      = errors.New("tour must have a summary")
	ErrEmptyCoverImage   = errors.New("tour must have a cover image")
	ErrInvalidRating     = errors.New("rating average must be between 1 and 5")
)

// Difficulty is the closed set of tour difficulty grades.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Valid reports whether d is one of the defined grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	}
	return false
}

// Tour is a catalog entry clients can browse, filter, and book.
type Tour struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Duration       int         `json:"duration"`
	MaxGroupSize   int         `json:"maxGroupSize"`
	Difficulty     Difficulty  `json:"difficulty"`
	RatingAverage  float64     `json:"ratingAverage"`
	RatingQuantity int         `json:"ratingQuantity"`
	Price          float64     `json:"price"`
	PriceDiscount  float64     `json:"priceDiscount,omitempty"`
	Summary        string      `json:"summary"`
	Description    string      `json:"description,omitempty"`
	ImageCover     string      `json:"imageCover"`
	Images         []string    `json:"images,omitempty"`
	StartDates     []time.Time `json:"startDates,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// NewTour creates a Tour with a fresh ID, default rating, and a creation
// timestamp, then validates it.
func NewTour(name string, duration, maxGroupSize int, difficulty Difficulty, price float64, summary, imageCover string) (*Tour, error) {
	tour := &Tour{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(name),
		Duration:      duration,
		MaxGroupSize:  maxGroupSize,
		Difficulty:    difficulty,
		RatingAverage: 4.5,
		Price:         price,
		Summary:       strings.TrimSpace(summary),
		ImageCover:    imageCover,
		CreatedAt:     time.Now().UTC(),
	}

	if err := tour.Validate(); err != nil {
		return nil, err
	}
	return tour, nil
}

// Validate checks the tour's fields, returning the first violation found.
func (t *Tour) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTourID
	}
	if t.Name == "" {
		return ErrEmptyTourName
	}
	if t.Duration <= 0 {
		return ErrInvalidDuration
	}
	if t.MaxGroupSize <= 0 {
		return ErrInvalidGroupSize
	}
	if !t.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	if t.RatingAverage < 1 || t.RatingAverage > 5 {
		return ErrInvalidRating
	}
	if t.Price <= 0 {
		return ErrInvalidPrice
	}
	if t.PriceDiscount < 0 || (t.PriceDiscount > 0 && t.PriceDiscount >= t.Price) {
		return ErrInvalidDiscount
	}
	if t.Summary == "" {
		return ErrEmptySummary
	}
	if t.ImageCover == "" {
		return ErrEmptyCoverImage
	}
	return nil
}
