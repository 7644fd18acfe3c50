package simplefeeds

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrFeedNotFound indicates a feed was not found
	ErrFeedNotFound = errors.New("feed not found")

	// ErrUserNotFound indicates a user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput indicates an ingestion request was rejected before any
	// backend was touched (missing owner, missing or empty payload)
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadFailed indicates an upload to the blob store failed
	ErrUploadFailed = errors.New("upload failed")

	// ErrDownloadFailed indicates a download from the blob store failed
	ErrDownloadFailed = errors.New("download failed")
)

// StorageError represents a blob store failure during ingestion or download.
// When returned from IngestFeed, no feed record was persisted and no
// notification was published.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports the storage failure direction, so callers can match
// ErrUploadFailed and ErrDownloadFailed without inspecting Op.
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrUploadFailed:
		return e.Op == "upload"
	case ErrDownloadFailed:
		return e.Op == "download"
	}
	return false
}

// MetadataError represents a repository failure after the blob write already
// succeeded. The stored object remains as an orphan; a reconciliation sweep
// may garbage-collect it later.
type MetadataError struct {
	FeedID uuid.UUID
	Op     string
	Err    error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata operation %s failed for feed %s: %v", e.Op, e.FeedID, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// UserError represents an error related to user operations
type UserError struct {
	UserID uuid.UUID
	Op     string
	Err    error
}

func (e *UserError) Error() string {
	return fmt.Sprintf("user operation %s failed for user %s: %v", e.Op, e.UserID, e.Err)
}

func (e *UserError) Unwrap() error {
	return e.Err
}
