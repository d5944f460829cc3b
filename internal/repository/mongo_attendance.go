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

// MongoAttendanceRepository implements domain.AttendanceRepository
type MongoAttendanceRepository struct {
	collection *mongo.Collection
}

func NewMongoAttendanceRepository(db *mongo.Database) *MongoAttendanceRepository {
	coll := db.Collection("attendance")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One record per employee per calendar date
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})

	return &MongoAttendanceRepository{
		collection: coll,
	}
}

func (r *MongoAttendanceRepository) Create(ctx context.Context, rec *domain.Attendance) error {
	rec.ID = primitive.NewObjectID().Hex()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

func (r *MongoAttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.Attendance, error) {
	var rec domain.Attendance
	filter := bson.M{"employee_id": employeeID, "date": date}
	if err := r.collection.FindOne(ctx, filter).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &rec, nil
}

func (r *MongoAttendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time, status string) error {
	update := bson.M{
		"$set": bson.M{
			"check_out":  at,
			"status":     status,
			"updated_at": time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set checkout: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoAttendanceRepository) ListByEmployee(ctx context.Context, employeeID, from, to string) ([]*domain.Attendance, error) {
	filter := bson.M{"employee_id": employeeID}
	if from != "" || to != "" {
		dateRange := bson.M{}
		if from != "" {
			dateRange["$gte"] = from
		}
		if to != "" {
			dateRange["$lte"] = to
		}
		filter["date"] = dateRange
	}
	return r.find(ctx, filter)
}

func (r *MongoAttendanceRepository) ListByDate(ctx context.Context, date string) ([]*domain.Attendance, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *MongoAttendanceRepository) ListByRange(ctx context.Context, from, to string) ([]*domain.Attendance, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": from, "$lte": to}})
}

func (r *MongoAttendanceRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"date": date})
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}

func (r *MongoAttendanceRepository) find(ctx context.Context, filter bson.M) ([]*domain.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.Attendance
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}
	return records, nil
}
