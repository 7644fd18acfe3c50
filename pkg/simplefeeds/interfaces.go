package simplefeeds

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore defines the interface for storage backends. Uploads overwrite:
// writing the same key twice replaces the object, which makes retried
// ingestions with the same derived key idempotent at the storage layer.
type BlobStore interface {
	// Upload uploads content directly
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams uploads content with additional parameters
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download downloads content directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete deletes content
	Delete(ctx context.Context, objectKey string) error

	// GetObjectMeta retrieves metadata for a stored object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)

	// ObjectURL returns the stable, dereferenceable location for a key. The
	// URL does not expire and is valid as soon as the upload for the key has
	// succeeded.
	ObjectURL(objectKey string) string
}

// Repository defines the interface for feed and user persistence. Feed
// records are partitioned by UserID; GetFeed is a cross-partition point read
// that the implementation must hide behind a single call.
type Repository interface {
	// Feed operations
	CreateFeed(ctx context.Context, feed *Feed) error
	GetFeed(ctx context.Context, id uuid.UUID) (*Feed, error)

	// ListFeedsByOwner returns the owner's feeds ordered by upload date
	// descending, ties broken by id descending, windowed by limit/offset.
	ListFeedsByOwner(ctx context.Context, userID string, limit, offset int) ([]*Feed, error)

	// CountFeedsByOwner returns the total number of feeds for the owner
	CountFeedsByOwner(ctx context.Context, userID string) (int, error)

	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}

// Publisher defines the interface for new-feed notification delivery.
// Publish is fire-and-forget: the service logs failures and never propagates
// them to its caller.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// ObjectMeta contains metadata about an object in storage
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
	Metadata    map[string]string
}

// UploadParams contains parameters for uploading an object
type UploadParams struct {
	ObjectKey string
	MimeType  string
}
