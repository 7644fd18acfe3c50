package simplefeeds

import (
	"time"

	"github.com/google/uuid"
)

// Feed is the metadata record describing one uploaded media object plus a
// reference to its binary payload. A feed is created once at ingestion and is
// never updated or deleted.
//
// JSON field names follow the persisted record layout: id, userId, feedUrl,
// description, contentType, fileSize, uploadDate.
type Feed struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	FeedURL     string    `json:"feedUrl"`
	FileName    string    `json:"fileName,omitempty"`
	Description string    `json:"description,omitempty"`
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
	UploadDate  time.Time `json:"uploadDate"`
}

// User is the owning identity for feeds. Users group feed records: UserID on
// a Feed is the partition key for all per-owner queries.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification describes a new-feed event delivered to downstream
// subscribers. Delivery is best-effort; subscribers must tolerate duplicates
// and gaps.
type Notification struct {
	FeedID  uuid.UUID
	UserID  string
	Message string
}

// DefaultPageSize is used when a list request does not specify a page size.
const DefaultPageSize = 10

// MaxPageSize caps the number of feeds returned per page.
const MaxPageSize = 100
