package services

import (
	"context"
	"fmt"
	"log"

	"attar/internal/models"
	"attar/pkg/b2"
)

// ObjectStorage is the slice of the storage client the upload pipeline
// consumes. *b2.Client satisfies it.
type ObjectStorage interface {
	Authorize(ctx context.Context) (*b2.Session, error)
	GetUploadTarget(ctx context.Context, sess *b2.Session, bucketID string) (*b2.UploadTarget, error)
	Upload(ctx context.Context, target *b2.UploadTarget, fileName string, data []byte) (*b2.FileInfo, error)
}

// UploadService pushes product image batches to object storage.
type UploadService struct {
	storage  ObjectStorage
	bucketID string
}

// NewUploadService creates a new UploadService.
func NewUploadService(storage ObjectStorage, bucketID string) *UploadService {
	return &UploadService{
		storage:  storage,
		bucketID: bucketID,
	}
}

// UploadAll uploads each file in the batch and returns a StoredFile for every
// one that made it. A single authorization and a single upload target are
// acquired up front and reused across the batch; failure of either aborts the
// whole batch. A file that fails to transfer is logged and skipped, so the
// result holds between zero and len(files) entries, in input order.
func (s *UploadService) UploadAll(ctx context.Context, files []models.FileBlob) ([]models.StoredFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	sess, err := s.storage.Authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize with object storage: %w", err)
	}
	target, err := s.storage.GetUploadTarget(ctx, sess, s.bucketID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire upload target: %w", err)
	}

	stored := make([]models.StoredFile, 0, len(files))
	for _, f := range files {
		info, err := s.storage.Upload(ctx, target, f.Name, f.Data)
		if err != nil {
			log.Printf("File upload error for %s: %v", f.Name, err)
			continue
		}
		stored = append(stored, models.StoredFile{
			ID:   info.ID,
			Name: f.Name,
			URL:  downloadURL(sess, info),
		})
	}
	return stored, nil
}

// downloadURL composes the public retrieval URL for an uploaded file. The
// upload timestamp doubles as a cache-busting query parameter.
func downloadURL(sess *b2.Session, info *b2.FileInfo) string {
	return fmt.Sprintf("%s/file/%s/%s?timestamp=%d", sess.DownloadURL, sess.BucketName, info.Name, info.UploadTimestamp)
}
