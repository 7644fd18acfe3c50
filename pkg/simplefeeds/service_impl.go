package simplefeeds

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-feeds/pkg/simplefeeds/namegen"
	"github.com/tendant/simple-feeds/pkg/simplefeeds/objectkey"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	publisher  Publisher
	keys       objectkey.Generator
	names      *namegen.Generator
	newID      func() uuid.UUID
	now        func() time.Time
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithPublisher sets the notification publisher. Without one, ingestion
// skips the publish step entirely.
func WithPublisher(pub Publisher) Option {
	return func(s *service) {
		s.publisher = pub
	}
}

// WithKeyGenerator overrides the object key derivation strategy
func WithKeyGenerator(gen objectkey.Generator) Option {
	return func(s *service) {
		s.keys = gen
	}
}

// WithNameGenerator overrides the username generator used by CreateUser
func WithNameGenerator(gen *namegen.Generator) Option {
	return func(s *service) {
		s.names = gen
	}
}

// WithIDGenerator overrides feed/user id allocation. The default draws
// random UUIDs; tests inject deterministic sequences.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *service) {
		s.newID = fn
	}
}

// WithClock overrides the time source
func WithClock(fn func() time.Time) Option {
	return func(s *service) {
		s.now = fn
	}
}

// WithLogger sets the structured logger used for degraded-success reporting
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		keys:   objectkey.NewFeedKeyGenerator(),
		names:  namegen.New(),
		newID:  uuid.New,
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// Feed operations

// IngestFeed runs the upload pipeline: validate, allocate id, write the
// payload to the blob store, persist the feed record, publish a best-effort
// notification. The three backend calls run sequentially; each failure mode
// is distinguishable from the returned error type.
func (s *service) IngestFeed(ctx context.Context, req IngestFeedRequest) (*Feed, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if req.Payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidInput)
	}

	// An empty payload must never reach the blob store. The size hint is not
	// trusted; probe the stream itself.
	payload, err := requireNonEmpty(req.Payload)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	uploadedAt := s.now().UTC()
	key := s.keys.GenerateKey(id, req.FileName)

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.blobStore.UploadWithParams(ctx, payload, UploadParams{
		ObjectKey: key,
		MimeType:  contentType,
	}); err != nil {
		return nil, &StorageError{Key: key, Op: "upload", Err: err}
	}

	feed := &Feed{
		ID:          id,
		UserID:      req.UserID,
		FeedURL:     s.blobStore.ObjectURL(key),
		FileName:    req.FileName,
		Description: req.Description,
		ContentType: contentType,
		FileSize:    req.FileSize,
		UploadDate:  uploadedAt,
	}

	if err := s.repository.CreateFeed(ctx, feed); err != nil {
		// The object written above is now orphaned. Deleting it here would
		// trade one inconsistency for a second failure mode on the failure
		// path; an out-of-band sweep reconciles unreferenced objects instead.
		return nil, &MetadataError{FeedID: id, Op: "create", Err: err}
	}

	if s.publisher != nil {
		n := Notification{
			FeedID:  id,
			UserID:  req.UserID,
			Message: fmt.Sprintf("New feed uploaded by User: %s", req.UserID),
		}
		if err := s.publisher.Publish(ctx, n); err != nil {
			// Advisory only: the feed is durable, so the call still succeeds.
			s.logger.Error("Failed to publish feed notification", "feed_id", id, "user_id", req.UserID, "error", err)
		}
	}

	return feed, nil
}

func (s *service) GetFeed(ctx context.Context, id uuid.UUID) (*Feed, error) {
	return s.repository.GetFeed(ctx, id)
}

func (s *service) ListFeedsByOwner(ctx context.Context, req ListFeedsRequest) ([]*Feed, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	feeds, err := s.repository.ListFeedsByOwner(ctx, req.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds for user %s: %w", req.UserID, err)
	}
	return feeds, nil
}

func (s *service) CountFeedsByOwner(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	count, err := s.repository.CountFeedsByOwner(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count feeds for user %s: %w", userID, err)
	}
	return count, nil
}

func (s *service) DownloadFeed(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	feed, err := s.repository.GetFeed(ctx, id)
	if err != nil {
		return nil, err
	}

	key := s.keys.GenerateKey(feed.ID, feed.FileName)
	rc, err := s.blobStore.Download(ctx, key)
	if err != nil {
		return nil, &StorageError{Key: key, Op: "download", Err: err}
	}
	return rc, nil
}

// User operations

func (s *service) CreateUser(ctx context.Context) (*User, error) {
	user := &User{
		ID:        s.newID(),
		Username:  s.names.Generate(),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, &UserError{UserID: user.ID, Op: "create", Err: err}
	}

	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repository.GetUser(ctx, id)
}

// requireNonEmpty reads the first byte of r to prove the payload is
// non-empty, returning a reader that replays the full stream.
func requireNonEmpty(r io.Reader) (io.Reader, error) {
	var first [1]byte
	n, err := r.Read(first[:])
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: payload is empty", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: failed to read payload: %v", ErrInvalidInput, err)
	}
	return io.MultiReader(bytes.NewReader(first[:n]), r), nil
}
