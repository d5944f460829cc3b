package service

import (
	"context"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/crewdesk/crewdesk/internal/authz"
	"github.com/crewdesk/crewdesk/internal/domain"
)

// DocumentService handles file sharing: bytes go to the blob store, the
// metadata envelope goes to Mongo.
type DocumentService struct {
	docRepo domain.DocumentRepository
	blobs   domain.BlobStore
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo domain.DocumentRepository, blobs domain.BlobStore) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		blobs:   blobs,
	}
}

// Upload stores the file under a ULID key and records its metadata.
func (s *DocumentService) Upload(ctx context.Context, p domain.Principal, name string, data []byte, contentType string) (*domain.Document, error) {
	if name == "" {
		return nil, domain.Validationf("file name is required")
	}
	if len(data) == 0 {
		return nil, domain.Validationf("file is empty")
	}

	key := ulid.Make().String() + filepath.Ext(name)

	url, err := s.blobs.Upload(ctx, data, key, contentType)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		UploaderID:  p.UserID,
		Name:        name,
		Key:         key,
		URL:         url,
		Size:        int64(len(data)),
		ContentType: contentType,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		// Metadata write failed; drop the orphan blob.
		_ = s.blobs.Delete(ctx, key)
		return nil, err
	}

	return doc, nil
}

// Get loads a document the principal may see.
func (s *DocumentService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireMember(p, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns documents the principal uploaded or was given; admins see all.
func (s *DocumentService) List(ctx context.Context, p domain.Principal) ([]*domain.Document, error) {
	if p.IsAdmin() {
		return s.docRepo.ListAll(ctx)
	}
	return s.docRepo.ListForUser(ctx, p.UserID)
}

// Share extends the document's member set. Only the uploader (or an admin)
// may share.
func (s *DocumentService) Share(ctx context.Context, p domain.Principal, id string, userIDs []string) (*domain.Document, error) {
	if len(userIDs) == 0 {
		return nil, domain.Validationf("user_ids is required")
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.IsOrganizer(p, doc.UploaderID) {
		return nil, domain.ErrForbidden
	}

	if err := s.docRepo.AddSharedWith(ctx, id, userIDs); err != nil {
		return nil, err
	}
	return s.docRepo.GetByID(ctx, id)
}

// Delete removes the blob then its metadata. Uploader or admin only.
func (s *DocumentService) Delete(ctx context.Context, p domain.Principal, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.IsOrganizer(p, doc.UploaderID) {
		return domain.ErrForbidden
	}

	if err := s.blobs.Delete(ctx, doc.Key); err != nil {
		return err
	}
	return s.docRepo.Delete(ctx, id)
}
