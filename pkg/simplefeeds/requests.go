package simplefeeds

import "io"

// Request DTOs

// IngestFeedRequest contains parameters for ingesting a new feed.
//
// FileSize is a size hint carried into the persisted record; it is
// informational and never validated against the payload. Payload emptiness is
// checked against the stream itself.
type IngestFeedRequest struct {
	UserID      string
	FileName    string
	Description string
	ContentType string
	FileSize    int64
	Payload     io.Reader
}

// ListFeedsRequest contains parameters for listing a user's feeds. Page is
// 1-based and defaults to 1; PageSize defaults to DefaultPageSize and is
// clamped to [1, MaxPageSize].
type ListFeedsRequest struct {
	UserID   string
	Page     int
	PageSize int
}
