// Package config assembles a simplefeeds.Service from declarative
// server configuration, with optional environment variable overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
	snsnotify "github.com/tendant/simple-feeds/pkg/simplefeeds/notify/sns"
	repomemory "github.com/tendant/simple-feeds/pkg/simplefeeds/repo/memory"
	repopg "github.com/tendant/simple-feeds/pkg/simplefeeds/repo/postgres"
	fsstorage "github.com/tendant/simple-feeds/pkg/simplefeeds/storage/fs"
	memorystorage "github.com/tendant/simple-feeds/pkg/simplefeeds/storage/memory"
	s3storage "github.com/tendant/simple-feeds/pkg/simplefeeds/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		DBSchema:     "feeds",
		Storage: StorageConfig{
			Type:   "memory",
			Config: map[string]interface{}{},
		},
		Notify: NotifyConfig{
			Type: "logging",
		},
	}
}

// ServerConfig represents server configuration for the simple-feeds service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (default: feeds)

	// Storage configuration
	Storage StorageConfig

	// Notification configuration
	Notify NotifyConfig
}

// StorageConfig represents configuration for the blob storage backend
type StorageConfig struct {
	Type   string // "memory", "fs", "s3"
	Config map[string]interface{}
}

// NotifyConfig represents configuration for the notification publisher
type NotifyConfig struct {
	Type   string // "noop", "logging", "sns"
	Config map[string]interface{}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.Storage.Type {
	case "memory", "fs", "s3":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	switch c.Notify.Type {
	case "noop", "logging", "sns":
	default:
		return fmt.Errorf("unsupported notify type: %s", c.Notify.Type)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (simplefeeds.Service, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildBlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	publisher, err := c.buildPublisher()
	if err != nil {
		return nil, fmt.Errorf("failed to build publisher: %w", err)
	}

	return simplefeeds.New(
		simplefeeds.WithRepository(repo),
		simplefeeds.WithBlobStore(store),
		simplefeeds.WithPublisher(publisher),
	)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (simplefeeds.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, errors.New("database_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		schema := c.DBSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// PingPostgres verifies connectivity to Postgres and optionally sets search_path for the session.
// It fails if the schema (when provided) does not exist.
func PingPostgres(databaseURL, schema string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// buildBlobStore creates a BlobStore based on the storage configuration
func (c *ServerConfig) buildBlobStore() (simplefeeds.BlobStore, error) {
	switch c.Storage.Type {
	case "memory":
		return memorystorage.New(), nil

	case "fs":
		fsConfig := fsstorage.Config{
			BaseDir:   getString(c.Storage.Config, "base_dir", "./data/storage"),
			URLPrefix: getString(c.Storage.Config, "url_prefix", ""),
		}
		return fsstorage.New(fsConfig)

	case "s3":
		s3Config := s3storage.Config{
			Region:                 getString(c.Storage.Config, "region", "us-east-1"),
			Bucket:                 getString(c.Storage.Config, "bucket", ""),
			AccessKeyID:            getString(c.Storage.Config, "access_key_id", ""),
			SecretAccessKey:        getString(c.Storage.Config, "secret_access_key", ""),
			Endpoint:               getString(c.Storage.Config, "endpoint", ""),
			UsePathStyle:           getBool(c.Storage.Config, "use_path_style", false),
			PublicBaseURL:          getString(c.Storage.Config, "public_base_url", ""),
			EnableSSE:              getBool(c.Storage.Config, "enable_sse", false),
			SSEAlgorithm:           getString(c.Storage.Config, "sse_algorithm", "AES256"),
			SSEKMSKeyID:            getString(c.Storage.Config, "sse_kms_key_id", ""),
			CreateBucketIfNotExist: getBool(c.Storage.Config, "create_bucket_if_not_exist", false),
		}
		return s3storage.New(s3Config)

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
}

// buildPublisher creates a Publisher based on the notification configuration
func (c *ServerConfig) buildPublisher() (simplefeeds.Publisher, error) {
	switch c.Notify.Type {
	case "noop":
		return simplefeeds.NewNoopPublisher(), nil

	case "logging":
		return simplefeeds.NewLoggingPublisher(nil), nil

	case "sns":
		snsConfig := snsnotify.Config{
			Region:          getString(c.Notify.Config, "region", "us-east-1"),
			TopicARN:        getString(c.Notify.Config, "topic_arn", ""),
			AccessKeyID:     getString(c.Notify.Config, "access_key_id", ""),
			SecretAccessKey: getString(c.Notify.Config, "secret_access_key", ""),
			Endpoint:        getString(c.Notify.Config, "endpoint", ""),
		}
		return snsnotify.New(snsConfig)

	default:
		return nil, fmt.Errorf("unsupported notify type: %s", c.Notify.Type)
	}
}

func getString(config map[string]interface{}, key string, defaultValue string) string {
	if value, exists := config[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

func getBool(config map[string]interface{}, key string, defaultValue bool) bool {
	if value, exists := config[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
		if str, ok := value.(string); ok {
			if b, err := strconv.ParseBool(str); err == nil {
				return b
			}
		}
	}
	return defaultValue
}
