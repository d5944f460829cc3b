package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crewdesk/crewdesk/internal/domain"
)

// MongoReviewRepository implements domain.ReviewRepository
type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	coll := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}}},
		{Keys: bson.D{{Key: "reviewer_id", Value: 1}}},
	})

	return &MongoReviewRepository{
		collection: coll,
	}
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	review.ID = primitive.NewObjectID().Hex()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *MongoReviewRepository) Acknowledge(ctx context.Context, id string, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":     domain.ReviewAcknowledged,
			"acked_at":   at,
			"updated_at": time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to acknowledge review: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoReviewRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Review, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID})
}

func (r *MongoReviewRepository) ListAll(ctx context.Context) ([]*domain.Review, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoReviewRepository) find(ctx context.Context, filter bson.M) ([]*domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*domain.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
