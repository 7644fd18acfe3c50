package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
	"github.com/tendant/simple-feeds/pkg/simplefeeds/storage/memory"
)

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	err := backend.UploadWithParams(ctx, strings.NewReader("feed body"), simplefeeds.UploadParams{
		ObjectKey: "feed-1-episode.mp3",
		MimeType:  "audio/mpeg",
	})
	require.NoError(t, err)

	rc, err := backend.Download(ctx, "feed-1-episode.mp3")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "feed body", string(data))

	meta, err := backend.GetObjectMeta(ctx, "feed-1-episode.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(9), meta.Size)
	assert.Equal(t, "audio/mpeg", meta.ContentType)
}

func TestReuploadOverwrites(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	require.NoError(t, backend.Upload(ctx, "key", strings.NewReader("first")))
	require.NoError(t, backend.Upload(ctx, "key", strings.NewReader("second")))

	rc, err := backend.Download(ctx, "key")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()

	require.NoError(t, backend.Upload(ctx, "key", strings.NewReader("data")))
	require.NoError(t, backend.Delete(ctx, "key"))

	_, err := backend.Download(ctx, "key")
	assert.Error(t, err)

	assert.Error(t, backend.Delete(ctx, "key"))
}

func TestObjectURL(t *testing.T) {
	backend := memory.New()
	assert.Equal(t, "memory://some-key", backend.ObjectURL("some-key"))
}
