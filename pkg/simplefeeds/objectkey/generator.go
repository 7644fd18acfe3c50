// Package objectkey derives blob store keys for feed payloads.
package objectkey

import (
	"strings"

	"github.com/google/uuid"
)

// Generator defines the interface for object key derivation strategies.
// Derivation must be deterministic: the same feed id and file name always
// produce the same key, so a retried upload overwrites rather than duplicates.
type Generator interface {
	GenerateKey(feedID uuid.UUID, fileName string) string
}

// FeedKeyGenerator produces flat keys of the form "{feedID}-{fileName}". The
// feed id prefix guarantees uniqueness across owners even for identical file
// names.
type FeedKeyGenerator struct{}

func NewFeedKeyGenerator() *FeedKeyGenerator {
	return &FeedKeyGenerator{}
}

func (g *FeedKeyGenerator) GenerateKey(feedID uuid.UUID, fileName string) string {
	if fileName == "" {
		return feedID.String()
	}
	return feedID.String() + "-" + sanitizeFilename(fileName)
}

// CustomFuncGenerator allows callers to provide their own derivation function
type CustomFuncGenerator struct {
	GenerateFunc func(feedID uuid.UUID, fileName string) string
}

func NewCustomFuncGenerator(fn func(feedID uuid.UUID, fileName string) string) *CustomFuncGenerator {
	return &CustomFuncGenerator{GenerateFunc: fn}
}

func (g *CustomFuncGenerator) GenerateKey(feedID uuid.UUID, fileName string) string {
	return g.GenerateFunc(feedID, fileName)
}

// sanitizeFilename replaces characters that are problematic in object keys
// and filesystem paths
func sanitizeFilename(fileName string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(fileName)
}
