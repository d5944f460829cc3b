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

// MongoMeetingRepository implements domain.MeetingRepository
type MongoMeetingRepository struct {
	collection *mongo.Collection
}

func NewMongoMeetingRepository(db *mongo.Database) *MongoMeetingRepository {
	coll := db.Collection("meetings")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizer_id", Value: 1}}},
		{Keys: bson.D{{Key: "participants", Value: 1}}},
		{Keys: bson.D{{Key: "starts_at", Value: 1}}},
	})

	return &MongoMeetingRepository{
		collection: coll,
	}
}

func (r *MongoMeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	meeting.ID = primitive.NewObjectID().Hex()
	meeting.CreatedAt = time.Now()
	meeting.UpdatedAt = time.Now()
	if meeting.Participants == nil {
		meeting.Participants = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, meeting); err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

func (r *MongoMeetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	var meeting domain.Meeting
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meeting); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return &meeting, nil
}

func (r *MongoMeetingRepository) Update(ctx context.Context, meeting *domain.Meeting) error {
	meeting.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"title":            meeting.Title,
			"agenda":           meeting.Agenda,
			"starts_at":        meeting.StartsAt,
			"duration_minutes": meeting.DurationMinutes,
			"participants":     meeting.Participants,
			"updated_at":       meeting.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": meeting.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoMeetingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoMeetingRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Meeting, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"organizer_id": userID},
			{"participants": userID},
		},
	}
	return r.find(ctx, filter)
}

func (r *MongoMeetingRepository) ListAll(ctx context.Context) ([]*domain.Meeting, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoMeetingRepository) CountOnDate(ctx context.Context, dayStart, dayEnd time.Time) (int64, error) {
	filter := bson.M{"starts_at": bson.M{"$gte": dayStart, "$lt": dayEnd}}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count meetings: %w", err)
	}
	return count, nil
}

func (r *MongoMeetingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer cursor.Close(ctx)

	var meetings []*domain.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return meetings, nil
}
