package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
)

// Repository implements simplefeeds.Repository using in-memory storage
type Repository struct {
	mu           sync.RWMutex
	feeds        map[uuid.UUID]*simplefeeds.Feed
	users        map[uuid.UUID]*simplefeeds.User
	feedsByOwner map[string][]uuid.UUID
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		feeds:        make(map[uuid.UUID]*simplefeeds.Feed),
		users:        make(map[uuid.UUID]*simplefeeds.User),
		feedsByOwner: make(map[string][]uuid.UUID),
	}
}

// Feed operations

func (r *Repository) CreateFeed(ctx context.Context, feed *simplefeeds.Feed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy to avoid external modifications
	feedCopy := *feed
	r.feeds[feed.ID] = &feedCopy
	r.feedsByOwner[feed.UserID] = append(r.feedsByOwner[feed.UserID], feed.ID)

	return nil
}

func (r *Repository) GetFeed(ctx context.Context, id uuid.UUID) (*simplefeeds.Feed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feed, exists := r.feeds[id]
	if !exists {
		return nil, simplefeeds.ErrFeedNotFound
	}

	feedCopy := *feed
	return &feedCopy, nil
}

func (r *Repository) ListFeedsByOwner(ctx context.Context, userID string, limit, offset int) ([]*simplefeeds.Feed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.feedsByOwner[userID]
	result := make([]*simplefeeds.Feed, 0, len(ids))
	for _, id := range ids {
		if feed, exists := r.feeds[id]; exists {
			feedCopy := *feed
			result = append(result, &feedCopy)
		}
	}

	// Upload date descending, id descending as tiebreak, so the page
	// sequence is stable and repeatable.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UploadDate.Equal(result[j].UploadDate) {
			return result[i].UploadDate.After(result[j].UploadDate)
		}
		return strings.Compare(result[i].ID.String(), result[j].ID.String()) > 0
	})

	if offset > 0 {
		if offset >= len(result) {
			return []*simplefeeds.Feed{}, nil
		}
		result = result[offset:]
	}

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}

	return result, nil
}

func (r *Repository) CountFeedsByOwner(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.feedsByOwner[userID]), nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *simplefeeds.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	userCopy := *user
	r.users[user.ID] = &userCopy

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*simplefeeds.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, simplefeeds.ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}
