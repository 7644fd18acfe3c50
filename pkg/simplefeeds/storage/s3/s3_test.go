package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-feeds/pkg/simplefeeds/storage/s3"
)

func TestNew(t *testing.T) {
	t.Run("requires bucket", func(t *testing.T) {
		_, err := s3.New(s3.Config{})
		assert.Error(t, err)
	})

	t.Run("builds client without touching the network", func(t *testing.T) {
		backend, err := s3.New(s3.Config{
			Bucket:          "feeds",
			Region:          "us-west-2",
			AccessKeyID:     "test",
			SecretAccessKey: "test",
		})
		require.NoError(t, err)
		assert.NotNil(t, backend)
	})
}

func TestObjectURL(t *testing.T) {
	t.Run("public base url takes precedence", func(t *testing.T) {
		backend, err := s3.New(s3.Config{
			Bucket:        "feeds",
			PublicBaseURL: "https://cdn.example.com/",
			Endpoint:      "http://localhost:9000",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/key", backend.ObjectURL("key"))
	})

	t.Run("custom endpoint uses path style", func(t *testing.T) {
		backend, err := s3.New(s3.Config{
			Bucket:       "feeds",
			Endpoint:     "http://localhost:9000",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/feeds/key", backend.ObjectURL("key"))
	})

	t.Run("default is virtual hosted aws url", func(t *testing.T) {
		backend, err := s3.New(s3.Config{Bucket: "feeds", Region: "eu-west-1"})
		require.NoError(t, err)
		assert.Equal(t, "https://feeds.s3.eu-west-1.amazonaws.com/key", backend.ObjectURL("key"))
	})
}
