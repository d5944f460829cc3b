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

// MongoPayrollRepository implements domain.PayrollRepository
type MongoPayrollRepository struct {
	collection *mongo.Collection
}

func NewMongoPayrollRepository(db *mongo.Database) *MongoPayrollRepository {
	coll := db.Collection("payroll")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One slip per employee per period
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "employee_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	return &MongoPayrollRepository{
		collection: coll,
	}
}

func (r *MongoPayrollRepository) Create(ctx context.Context, slip *domain.Payroll) error {
	slip.ID = primitive.NewObjectID().Hex()
	slip.CreatedAt = time.Now()
	slip.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, slip); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPayrollDuplicate
		}
		return fmt.Errorf("failed to create payroll entry: %w", err)
	}
	return nil
}

func (r *MongoPayrollRepository) GetByID(ctx context.Context, id string) (*domain.Payroll, error) {
	var slip domain.Payroll
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&slip); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payroll entry: %w", err)
	}
	return &slip, nil
}

func (r *MongoPayrollRepository) GetByPeriod(ctx context.Context, employeeID string, month, year int) (*domain.Payroll, error) {
	var slip domain.Payroll
	filter := bson.M{"employee_id": employeeID, "month": month, "year": year}
	if err := r.collection.FindOne(ctx, filter).Decode(&slip); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payroll entry: %w", err)
	}
	return &slip, nil
}

// Release flips a pending slip to released and stamps the release date.
// The status guard in the filter makes a double release a no-match.
func (r *MongoPayrollRepository) Release(ctx context.Context, id string, at time.Time) error {
	filter := bson.M{"_id": id, "status": domain.PayrollPending}
	update := bson.M{
		"$set": bson.M{
			"status":       domain.PayrollReleased,
			"release_date": at,
			"updated_at":   time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release payroll entry: %w", err)
	}
	if result.MatchedCount == 0 {
		// Either missing or already released; let the caller decide which.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return domain.ErrPayrollReleased
	}
	return nil
}

func (r *MongoPayrollRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Payroll, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID})
}

func (r *MongoPayrollRepository) ListByPeriod(ctx context.Context, month, year int) ([]*domain.Payroll, error) {
	filter := bson.M{}
	if month > 0 {
		filter["month"] = month
	}
	if year > 0 {
		filter["year"] = year
	}
	return r.find(ctx, filter)
}

func (r *MongoPayrollRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count payroll entries: %w", err)
	}
	return count, nil
}

func (r *MongoPayrollRepository) find(ctx context.Context, filter bson.M) ([]*domain.Payroll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll: %w", err)
	}
	defer cursor.Close(ctx)

	var slips []*domain.Payroll
	if err := cursor.All(ctx, &slips); err != nil {
		return nil, fmt.Errorf("failed to decode payroll entries: %w", err)
	}
	return slips, nil
}
