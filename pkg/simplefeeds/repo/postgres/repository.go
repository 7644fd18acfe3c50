// Package postgres implements simplefeeds.Repository on PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE feeds (
//	    id           UUID PRIMARY KEY,
//	    user_id      TEXT NOT NULL,
//	    feed_url     TEXT NOT NULL,
//	    file_name    TEXT NOT NULL DEFAULT '',
//	    description  TEXT NOT NULL DEFAULT '',
//	    content_type TEXT NOT NULL DEFAULT 'application/octet-stream',
//	    file_size    BIGINT NOT NULL DEFAULT 0,
//	    upload_date  TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX feeds_owner_recency ON feeds (user_id, upload_date DESC, id DESC);
//
//	CREATE TABLE users (
//	    id         UUID PRIMARY KEY,
//	    username   TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//
// The feeds_owner_recency index serves the per-owner pagination query; the
// primary key serves the cross-partition point read in GetFeed.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplefeeds.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "feeds") {
				return fmt.Errorf("feed already exists")
			}
			if strings.Contains(pgErr.ConstraintName, "users") {
				return fmt.Errorf("user already exists")
			}
			return fmt.Errorf("duplicate entry")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Feed operations

func (r *Repository) CreateFeed(ctx context.Context, feed *simplefeeds.Feed) error {
	query := `
		INSERT INTO feeds (
			id, user_id, feed_url, file_name, description,
			content_type, file_size, upload_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		feed.ID, feed.UserID, feed.FeedURL, feed.FileName, feed.Description,
		feed.ContentType, feed.FileSize, feed.UploadDate)

	if err != nil {
		return r.handlePostgresError("create feed", err)
	}

	return nil
}

func (r *Repository) GetFeed(ctx context.Context, id uuid.UUID) (*simplefeeds.Feed, error) {
	query := `
		SELECT id, user_id, feed_url, file_name, description,
		       content_type, file_size, upload_date
		FROM feeds WHERE id = $1`

	var feed simplefeeds.Feed
	err := r.db.QueryRow(ctx, query, id).Scan(
		&feed.ID, &feed.UserID, &feed.FeedURL, &feed.FileName, &feed.Description,
		&feed.ContentType, &feed.FileSize, &feed.UploadDate)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplefeeds.ErrFeedNotFound
		}
		return nil, r.handlePostgresError("get feed", err)
	}

	return &feed, nil
}

func (r *Repository) ListFeedsByOwner(ctx context.Context, userID string, limit, offset int) ([]*simplefeeds.Feed, error) {
	query := `
		SELECT id, user_id, feed_url, file_name, description,
		       content_type, file_size, upload_date
		FROM feeds WHERE user_id = $1
		ORDER BY upload_date DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, r.handlePostgresError("list feeds", err)
	}
	defer rows.Close()

	feeds := make([]*simplefeeds.Feed, 0)
	for rows.Next() {
		var feed simplefeeds.Feed
		if err := rows.Scan(
			&feed.ID, &feed.UserID, &feed.FeedURL, &feed.FileName, &feed.Description,
			&feed.ContentType, &feed.FileSize, &feed.UploadDate); err != nil {
			return nil, r.handlePostgresError("scan feed", err)
		}
		feeds = append(feeds, &feed)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list feeds", err)
	}

	return feeds, nil
}

func (r *Repository) CountFeedsByOwner(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feeds WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, r.handlePostgresError("count feeds", err)
	}

	return count, nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *simplefeeds.User) error {
	query := `INSERT INTO users (id, username, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, user.ID, user.Username, user.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create user", err)
	}

	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*simplefeeds.User, error) {
	query := `SELECT id, username, created_at FROM users WHERE id = $1`

	var user simplefeeds.User
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplefeeds.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user", err)
	}

	return &user, nil
}
