package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
)

func TestValidState(t *testing.T) {
	assert.True(t, models.ValidState("TX"))
	assert.True(t, models.ValidState("tx"))
	assert.True(t, models.ValidState("DC"))
	assert.False(t, models.ValidState("ZZ"))
	assert.False(t, models.ValidState(""))
	assert.False(t, models.ValidState("Texas"))
}

func TestStateCodes(t *testing.T) {
	codes := models.StateCodes()
	// 50 states plus DC
	assert.Len(t, codes, 51)
	assert.Contains(t, codes, "AK")
	assert.Contains(t, codes, "WY")

	// Sorted for stable selector rendering
	for i := 1; i < len(codes); i++ {
		assert.Less(t, codes[i-1], codes[i])
	}
}

func TestStateOptions(t *testing.T) {
	options := models.StateOptions()
	assert.Len(t, options, 51)
	assert.Equal(t, "AK", options[0].Code)
	assert.Equal(t, "Alaska", options[0].Name)
}

func TestSchemaForPath(t *testing.T) {
	schema, ok := models.SchemaForPath("adjusters")
	assert.True(t, ok)
	assert.Equal(t, models.EntityTypeAdjuster, schema.Type)
	assert.True(t, schema.RequiresCaptcha)
	assert.Equal(t, models.ModerationPending, schema.DefaultReviewStatus)

	schema, ok = models.SchemaForPath("public-adjusters")
	assert.True(t, ok)
	assert.False(t, schema.RequiresCaptcha)
	assert.Equal(t, models.ModerationApproved, schema.DefaultReviewStatus)

	_, ok = models.SchemaForPath("lawyers")
	assert.False(t, ok)
}

func TestOptionalHelpers(t *testing.T) {
	assert.Nil(t, models.OptionalString(""))
	assert.Nil(t, models.OptionalString("   "))
	if v := models.OptionalString(" x "); assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}

	assert.Nil(t, models.OptionalRating(0))
	if v := models.OptionalRating(3); assert.NotNil(t, v) {
		assert.Equal(t, 3, *v)
	}
}
