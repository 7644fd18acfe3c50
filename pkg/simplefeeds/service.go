package simplefeeds

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-feeds library.
//
// IngestFeed performs no internal retries. Callers may retry a failed call
// wholesale: the object key is derived from the generated feed id, so a retry
// allocates a fresh id and at worst produces a duplicate record, never a
// corrupt one. Callers that need exactly-once ingestion must deduplicate on
// their side.
type Service interface {
	// Feed operations
	IngestFeed(ctx context.Context, req IngestFeedRequest) (*Feed, error)
	GetFeed(ctx context.Context, id uuid.UUID) (*Feed, error)
	ListFeedsByOwner(ctx context.Context, req ListFeedsRequest) ([]*Feed, error)
	CountFeedsByOwner(ctx context.Context, userID string) (int, error)
	DownloadFeed(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)

	// User operations
	CreateUser(ctx context.Context) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}
