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

// MongoTicketRepository implements domain.TicketRepository
type MongoTicketRepository struct {
	collection *mongo.Collection
}

func NewMongoTicketRepository(db *mongo.Database) *MongoTicketRepository {
	coll := db.Collection("tickets")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	return &MongoTicketRepository{
		collection: coll,
	}
}

func (r *MongoTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	ticket.ID = primitive.NewObjectID().Hex()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()
	if ticket.Messages == nil {
		ticket.Messages = []domain.TicketMessage{}
	}

	if _, err := r.collection.InsertOne(ctx, ticket); err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

func (r *MongoTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

func (r *MongoTicketRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Ticket, error) {
	return r.find(ctx, bson.M{"employee_id": employeeID})
}

func (r *MongoTicketRepository) ListAll(ctx context.Context) ([]*domain.Ticket, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoTicketRepository) AppendMessage(ctx context.Context, id string, msg domain.TicketMessage) error {
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to append ticket message: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoTicketRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	update := bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoTicketRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

func (r *MongoTicketRepository) find(ctx context.Context, filter bson.M) ([]*domain.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*domain.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}
