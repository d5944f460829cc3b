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

// MongoDocumentRepository implements domain.DocumentRepository
type MongoDocumentRepository struct {
	collection *mongo.Collection
}

func NewMongoDocumentRepository(db *mongo.Database) *MongoDocumentRepository {
	coll := db.Collection("documents")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uploader_id", Value: 1}}},
		{Keys: bson.D{{Key: "shared_with", Value: 1}}},
	})

	return &MongoDocumentRepository{
		collection: coll,
	}
}

func (r *MongoDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	doc.ID = primitive.NewObjectID().Hex()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()
	if doc.SharedWith == nil {
		doc.SharedWith = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *MongoDocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (r *MongoDocumentRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Document, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"uploader_id": userID},
			{"shared_with": userID},
		},
	}
	return r.find(ctx, filter)
}

func (r *MongoDocumentRepository) ListAll(ctx context.Context) ([]*domain.Document, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoDocumentRepository) AddSharedWith(ctx context.Context, id string, userIDs []string) error {
	update := bson.M{
		"$addToSet": bson.M{"shared_with": bson.M{"$each": userIDs}},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to share document: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoDocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoDocumentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*domain.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}
