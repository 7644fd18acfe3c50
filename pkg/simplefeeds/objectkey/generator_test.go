package objectkey_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-feeds/pkg/simplefeeds/objectkey"
)

func TestFeedKeyGenerator(t *testing.T) {
	gen := objectkey.NewFeedKeyGenerator()
	feedID := uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef1234567890")

	t.Run("joins feed id and file name", func(t *testing.T) {
		key := gen.GenerateKey(feedID, "episode.mp3")
		assert.Equal(t, "a1b2c3d4-e5f6-7890-abcd-ef1234567890-episode.mp3", key)
	})

	t.Run("empty file name yields bare id", func(t *testing.T) {
		key := gen.GenerateKey(feedID, "")
		assert.Equal(t, feedID.String(), key)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t,
			gen.GenerateKey(feedID, "a.mp3"),
			gen.GenerateKey(feedID, "a.mp3"))
	})

	t.Run("sanitizes problematic characters", func(t *testing.T) {
		key := gen.GenerateKey(feedID, "my show/ep 1?.mp3")
		assert.Equal(t, feedID.String()+"-my_show_ep_1_.mp3", key)
	})
}

func TestCustomFuncGenerator(t *testing.T) {
	gen := objectkey.NewCustomFuncGenerator(func(feedID uuid.UUID, fileName string) string {
		return "prefix/" + feedID.String()
	})

	feedID := uuid.New()
	assert.Equal(t, "prefix/"+feedID.String(), gen.GenerateKey(feedID, "ignored.mp3"))
}
