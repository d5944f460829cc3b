package domain

import (
	"context"
	"time"
)

// Document is the metadata record for a shared file. The bytes live in
// S3-compatible storage under Key; Mongo only holds this envelope.
type Document struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UploaderID  string    `bson:"uploader_id" json:"uploader_id"`
	Name        string    `bson:"name" json:"name"`
	Key         string    `bson:"key" json:"key"`
	URL         string    `bson:"url" json:"url"`
	Size        int64     `bson:"size" json:"size"`
	ContentType string    `bson:"content_type" json:"content_type"`
	SharedWith  []string  `bson:"shared_with" json:"shared_with"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// MemberIDs implements Owned: uploader plus everyone the file is shared with.
func (d *Document) MemberIDs() []string {
	return append([]string{d.UploaderID}, d.SharedWith...)
}

// DocumentRepository defines file-metadata persistence operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	ListForUser(ctx context.Context, userID string) ([]*Document, error)
	ListAll(ctx context.Context) ([]*Document, error)
	AddSharedWith(ctx context.Context, id string, userIDs []string) error
	Delete(ctx context.Context, id string) error
}

// BlobStore is the boundary to object storage.
type BlobStore interface {
	Upload(ctx context.Context, file []byte, key string, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
