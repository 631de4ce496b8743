package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourbase/tours-api/internal/domain"
	"github.com/tourbase/tours-api/internal/store"
)

const userCollection = "users"

// UserStore implements store.UserStore on a MongoDB collection.
type UserStore struct {
	coll *mongo.Collection
}

// NewUserStore creates a UserStore backed by the given database and ensures
// the unique index on emails exists.
func NewUserStore(ctx context.Context, db *mongo.Database) (*UserStore, error) {
	coll := db.Collection(userCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user email index: %w", err)
	}

	return &UserStore{coll: coll}, nil
}

type mongoUser struct {
	ID                uuid.UUID   `bson:"_id"`
	Name              string      `bson:"name"`
	Email             string      `bson:"email"`
	Photo             string      `bson:"photo,omitempty"`
	Role              domain.Role `bson:"role"`
	HashedPassword    string      `bson:"hashedPassword"`
	PasswordChangedAt *time.Time  `bson:"passwordChangedAt,omitempty"`
	CreatedAt         time.Time   `bson:"createdAt"`
	UpdatedAt         time.Time   `bson:"updatedAt"`
}

func toMongoUser(u *domain.User) *mongoUser {
	return &mongoUser{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Photo:             u.Photo,
		Role:              u.Role,
		HashedPassword:    u.HashedPassword,
		PasswordChangedAt: u.PasswordChangedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func fromMongoUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:                mu.ID,
		Name:              mu.Name,
		Email:             mu.Email,
		Photo:             mu.Photo,
		Role:              mu.Role,
		HashedPassword:    mu.HashedPassword,
		PasswordChangedAt: mu.PasswordChangedAt,
		CreatedAt:         mu.CreatedAt,
		UpdatedAt:         mu.UpdatedAt,
	}
}

// Create implements store.UserStore. Plaintext passwords never reach this
// layer; only the hash is persisted.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	_, err := s.coll.InsertOne(ctx, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var mu mongoUser
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return fromMongoUser(&mu), nil
}

// GetByEmail implements store.UserStore. Lookups are case-insensitive
// because emails are normalized to lower case on signup.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	err := s.coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return fromMongoUser(&mu), nil
}

// UpdatePassword implements store.UserStore. Recording the change time is
// what invalidates tokens issued before it.
func (s *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string, changedAt time.Time) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"hashedPassword":    hashedPassword,
		"passwordChangedAt": changedAt,
		"updatedAt":         changedAt,
	}})
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

var _ store.UserStore = (*UserStore)(nil)
