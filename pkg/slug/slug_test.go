package slug_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/slug"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "john-smith", slug.Normalize("John Smith"))
	assert.Equal(t, "john-obrien", slug.Normalize("John  O'Brien"))
	assert.Equal(t, "jose-garcia", slug.Normalize("  JOSE GARCIA  "))
	assert.Equal(t, "", slug.Normalize("!!!"))
}

func TestGenerateEntitySlug(t *testing.T) {
	now := time.Unix(1693245000, 0)

	assert.Equal(t, "john-smith-tx-1693245000", slug.GenerateEntitySlug("John", "Smith", "TX", now))
	assert.Equal(t, "cher-unknown-ca-1693245000", slug.GenerateEntitySlug("Cher", "Unknown", "CA", now))

	// Unusable name parts fall back to a generic base
	assert.Equal(t, "profile-1693245000", slug.GenerateEntitySlug("!!!", "", "", now))
}

func TestGenerateEntitySlug_TimestampDisambiguates(t *testing.T) {
	a := slug.GenerateEntitySlug("John", "Smith", "TX", time.Unix(100, 0))
	b := slug.GenerateEntitySlug("John", "Smith", "TX", time.Unix(101, 0))
	assert.NotEqual(t, a, b)
}
