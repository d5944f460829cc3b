package tests

import (
	"context"
	"log"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB spins up a fresh MongoDB container and returns the database connection
// along with a cleanup function.
func SetupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	mongodbContainer, err := mongodb.Run(ctx, "mongo:latest")
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	return mongoClient.Database("test_db"), func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("failed to disconnect mongo: %v", err)
		}
		if err := mongodbContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}
}

// MemoryBlobStore implements domain.BlobStore in memory so e2e tests don't
// need an S3 endpoint.
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Upload(_ context.Context, file []byte, key string, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = file
	return "memory://" + key, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// Len reports how many blobs are stored.
func (s *MemoryBlobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
