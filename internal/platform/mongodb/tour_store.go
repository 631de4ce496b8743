package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/query"
	"github.com/tourbase/tours-api/internal/store"
)

const tourCollection = "tours"

// TourStore implements store.TourStore on a MongoDB collection.
type TourStore struct {
	coll *mongo.Collection
}

// NewTourStore creates a TourStore backed by the given database and ensures
// the unique index on tour names exists.
func NewTourStore(ctx context.Context, db *mongo.Database) (*TourStore, error) {
	coll := db.Collection(tourCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating tour name index: %w", err)
	}

	return &TourStore{coll: coll}, nil
}

// mongoTour is the persistence shape of a tour. It is kept separate from the
// domain type so bson tags and schema bookkeeping stay out of the domain.
type mongoTour struct {
	ID             uuid.UUID         `bson:"_id"`
	Name           string            `bson:"name"`
	Duration       int               `bson:"duration"`
	MaxGroupSize   int               `bson:"maxGroupSize"`
	Difficulty     domain.Difficulty `bson:"difficulty"`
	RatingAverage  float64           `bson:"ratingAverage"`
	RatingQuantity int               `bson:"ratingQuantity"`
	Price          float64           `bson:"price"`
	PriceDiscount  float64           `bson:"priceDiscount,omitempty"`
	Summary        string            `bson:"summary"`
	Description    string            `bson:"description,omitempty"`
	ImageCover     string            `bson:"imageCover"`
	Images         []string          `bson:"images,omitempty"`
	StartDates     []time.Time       `bson:"startDates,omitempty"`
	CreatedAt      time.Time         `bson:"createdAt"`
	Version        int               `bson:"__v"`
}

func toMongoTour(t *domain.Tour) *mongoTour {
	return &mongoTour{
		ID:             t.ID,
		Name:           t.Name,
		Duration:       t.Duration,
		MaxGroupSize:   t.MaxGroupSize,
		Difficulty:     t.Difficulty,
		RatingAverage:  t.RatingAverage,
		RatingQuantity: t.RatingQuantity,
		Price:          t.Price,
		PriceDiscount:  t.PriceDiscount,
		Summary:        t.Summary,
		Description:    t.Description,
		ImageCover:     t.ImageCover,
		Images:         t.Images,
		StartDates:     t.StartDates,
		CreatedAt:      t.CreatedAt,
	}
}

func fromMongoTour(mt *mongoTour) *domain.Tour {
	return &domain.Tour{
		ID:             mt.ID,
		Name:           mt.Name,
		Duration:       mt.Duration,
		MaxGroupSize:   mt.MaxGroupSize,
		Difficulty:     mt.Difficulty,
		RatingAverage:  mt.RatingAverage,
		RatingQuantity: mt.RatingQuantity,
		Price:          mt.Price,
		PriceDiscount:  mt.PriceDiscount,
		Summary:        mt.Summary,
		Description:    mt.Description,
		ImageCover:     mt.ImageCover,
		Images:         mt.Images,
		StartDates:     mt.StartDates,
		CreatedAt:      mt.CreatedAt,
	}
}

// Create implements store.TourStore.
func (s *TourStore) Create(ctx context.Context, tour *domain.Tour) error {
	_, err := s.coll.InsertOne(ctx, toMongoTour(tour))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrTourNameExists
		}
		return fmt.Errorf("inserting tour: %w", err)
	}
	return nil
}

// GetByID implements store.TourStore.
func (s *TourStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	var mt mongoTour
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrTourNotFound
		}
		return nil, fmt.Errorf("finding tour: %w", err)
	}
	return fromMongoTour(&mt), nil
}

// List implements store.TourStore. The spec's filter, sort, projection, and
// window translate to a single Find; a window past the end of the collection
// simply yields no documents.
func (s *TourStore) List(ctx context.Context, spec query.Spec) ([]*domain.Tour, error) {
	cursor, err := s.coll.Find(ctx, specFilter(spec), findOptions(spec))
	if err != nil {
		return nil, fmt.Errorf("listing tours: %w", err)
	}
	defer cursor.Close(ctx)

	tours := make([]*domain.Tour, 0)
	for cursor.Next(ctx) {
		var mt mongoTour
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decoding tour: %w", err)
		}
		tours = append(tours, fromMongoTour(&mt))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating tours: %w", err)
	}
	return tours, nil
}

// Count implements store.TourStore. Only the filter applies; the window is
// ignored so callers can size pagination.
func (s *TourStore) Count(ctx context.Context, spec query.Spec) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, specFilter(spec))
	if err != nil {
		return 0, fmt.Errorf("counting tours: %w", err)
	}
	return count, nil
}

// Update implements store.TourStore by replacing the whole document.
func (s *TourStore) Update(ctx context.Context, tour *domain.Tour) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": tour.ID}, toMongoTour(tour))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrTourNameExists
		}
		return fmt.Errorf("updating tour: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrTourNotFound
	}
	return nil
}

// Delete implements store.TourStore.
func (s *TourStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting tour: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrTourNotFound
	}
	return nil
}

// DifficultyStats implements store.TourStore with a single aggregation,
// cheapest difficulty bucket first.
func (s *TourStore) DifficultyStats(ctx context.Context) ([]store.DifficultyStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        "$difficulty",
			"numTours":   bson.M{"$sum": 1},
			"numRatings": bson.M{"$sum": "$ratingQuantity"},
			"avgRating":  bson.M{"$avg": "$ratingAverage"},
			"avgPrice":   bson.M{"$avg": "$price"},
			"minPrice":   bson.M{"$min": "$price"},
			"maxPrice":   bson.M{"$max": "$price"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avgPrice", Value: 1}}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating tour stats: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Difficulty domain.Difficulty `bson:"_id"`
		NumTours   int64             `bson:"numTours"`
		NumRatings int64             `bson:"numRatings"`
		AvgRating  float64           `bson:"avgRating"`
		AvgPrice   float64           `bson:"avgPrice"`
		MinPrice   float64           `bson:"minPrice"`
		MaxPrice   float64           `bson:"maxPrice"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decoding tour stats: %w", err)
	}

	stats := make([]store.DifficultyStats, 0, len(buckets))
	for _, b := range buckets {
		stats = append(stats, store.DifficultyStats{
			Difficulty: b.Difficulty,
			NumTours:   b.NumTours,
			NumRatings: b.NumRatings,
			AvgRating:  b.AvgRating,
			AvgPrice:   b.AvgPrice,
			MinPrice:   b.MinPrice,
			MaxPrice:   b.MaxPrice,
		})
	}
	return stats, nil
}

// MonthlyPlan implements store.TourStore. Each tour contributes one entry
// per start date inside the year; months come back busiest first.
func (s *TourStore) MonthlyPlan(ctx context.Context, year int) ([]store.MonthlyPlanEntry, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$startDates"}},
		{{Key: "$match", Value: bson.M{
			"startDates": bson.M{"$gte": yearStart, "$lt": yearEnd},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           bson.M{"$month": "$startDates"},
			"numTourStarts": bson.M{"$sum": 1},
			"tours":         bson.M{"$push": "$name"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "numTourStarts", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating monthly plan: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Month    int      `bson:"_id"`
		NumTours int64    `bson:"numTourStarts"`
		Tours    []string `bson:"tours"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decoding monthly plan: %w", err)
	}

	plan := make([]store.MonthlyPlanEntry, 0, len(buckets))
	for _, b := range buckets {
		plan = append(plan, store.MonthlyPlanEntry{
			Month:    b.Month,
			NumTours: b.NumTours,
			Tours:    b.Tours,
		})
	}
	return plan, nil
}

var _ store.TourStore = (*TourStore)(nil)
