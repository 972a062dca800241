package wizard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/wizard"
)

var testRules = wizard.Rules{
	ClaimTypes: []string{"roof", "water", "fire", "other"},
	Outcomes:   []string{"approved", "denied", "partial", "still_open", "other"},
}

func validDraft() *wizard.Draft {
	d := wizard.NewDraft(testRules)
	d.TargetName = "John Smith"
	d.SetNarrative("The adjuster was responsive and handled everything quickly.")
	d.OverallRating = 4
	d.State = "TX"
	d.ClaimType = "roof"
	d.ClaimOutcome = "approved"
	d.Recommend = "yes"
	return d
}

func TestDraft_FullWalk(t *testing.T) {
	d := validDraft()

	assert.Equal(t, wizard.StepExperience, d.Step())
	assert.True(t, d.Continue())
	assert.Equal(t, wizard.StepContext, d.Step())
	assert.True(t, d.Continue())
	assert.Equal(t, wizard.StepOutcome, d.Step())
	assert.True(t, d.Continue())
	assert.Equal(t, wizard.StepContact, d.Step())
	assert.Empty(t, d.Err())

	assert.True(t, d.BeginSubmit())
	assert.Equal(t, wizard.PhaseSubmitting, d.Phase())

	d.Finish(true)
	assert.Equal(t, wizard.PhaseSucceeded, d.Phase())
}

func TestDraft_ContinueBlockedByShortNarrative(t *testing.T) {
	d := validDraft()
	d.SetNarrative("Too short")

	assert.False(t, d.Continue())
	assert.Equal(t, wizard.StepExperience, d.Step())
	assert.NotEmpty(t, d.Err())
}

func TestDraft_NarrativeMinimumCountsCharacters(t *testing.T) {
	// The boundary sits at 20 characters, not bytes: multibyte text must
	// not slip under (or inflate past) the minimum.
	cases := []struct {
		name      string
		narrative string
		advances  bool
	}{
		{"19 ascii blocked", strings.Repeat("a", wizard.MinNarrativeLen-1), false},
		{"20 ascii advances", strings.Repeat("a", wizard.MinNarrativeLen), true},
		{"19 multibyte blocked", strings.Repeat("é", wizard.MinNarrativeLen-1), false},
		{"20 multibyte advances", strings.Repeat("é", wizard.MinNarrativeLen), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.SetNarrative(tc.narrative)

			assert.Equal(t, tc.advances, d.Continue())
			if tc.advances {
				assert.Equal(t, wizard.StepContext, d.Step())
			} else {
				assert.Equal(t, wizard.StepExperience, d.Step())
				assert.NotEmpty(t, d.Err())
			}
		})
	}
}

func TestDraft_ContinueBlockedByMissingRating(t *testing.T) {
	d := validDraft()
	d.OverallRating = 0

	assert.False(t, d.Continue())
	assert.Equal(t, wizard.StepExperience, d.Step())
}

func TestDraft_SingleErrorMostRecentWins(t *testing.T) {
	d := wizard.NewDraft(testRules)

	// Missing name first
	assert.False(t, d.Continue())
	first := d.Err()
	assert.NotEmpty(t, first)

	// Fix the name; the narrative error replaces the name error
	d.TargetName = "John Smith"
	assert.False(t, d.Continue())
	second := d.Err()
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestDraft_ContinueValidatesOnlyCurrentStep(t *testing.T) {
	// Step 2 and 3 fields are empty, yet step 1 advances
	d := wizard.NewDraft(testRules)
	d.TargetName = "Jane Doe"
	d.SetNarrative("She went above and beyond on our water damage claim.")
	d.OverallRating = 5

	assert.True(t, d.Continue())
	assert.Equal(t, wizard.StepContext, d.Step())
}

func TestDraft_BackPreservesFields(t *testing.T) {
	d := validDraft()
	assert.True(t, d.Continue())
	assert.True(t, d.Continue())
	assert.Equal(t, wizard.StepOutcome, d.Step())

	d.Back()
	assert.Equal(t, wizard.StepContext, d.Step())
	d.Back()
	assert.Equal(t, wizard.StepExperience, d.Step())

	// No field was cleared by navigating backwards
	assert.Equal(t, "John Smith", d.TargetName)
	assert.Equal(t, 4, d.OverallRating)
	assert.Equal(t, "TX", d.State)
	assert.Equal(t, "approved", d.ClaimOutcome)

	// Back from step 1 is a no-op
	d.Back()
	assert.Equal(t, wizard.StepExperience, d.Step())
}

func TestDraft_NarrativeClampedNotRejected(t *testing.T) {
	d := validDraft()
	d.SetNarrative(strings.Repeat("a", wizard.MaxNarrativeLen+100))

	assert.Len(t, []rune(d.Narrative()), wizard.MaxNarrativeLen)
	assert.True(t, d.Continue())
}

func TestDraft_SecondaryClamped(t *testing.T) {
	d := wizard.NewDraft(testRules)
	d.SetSecondary(strings.Repeat("b", wizard.MaxSecondaryLen+1))

	assert.Len(t, []rune(d.Secondary()), wizard.MaxSecondaryLen)
}

func TestDraft_InvalidStateBlocksStep2(t *testing.T) {
	d := validDraft()
	d.State = "ZZ"
	assert.True(t, d.Continue())

	assert.False(t, d.Continue())
	assert.Equal(t, wizard.StepContext, d.Step())
}

func TestDraft_InvalidOutcomeBlocksStep3(t *testing.T) {
	d := validDraft()
	d.ClaimOutcome = "settled"
	assert.True(t, d.Continue())
	assert.True(t, d.Continue())

	assert.False(t, d.Continue())
	assert.Equal(t, wizard.StepOutcome, d.Step())
}

func TestDraft_BeginSubmitRequiresFinalStep(t *testing.T) {
	d := validDraft()

	assert.False(t, d.BeginSubmit())
	assert.Equal(t, wizard.PhaseEditing, d.Phase())
}

func TestDraft_RetryAfterFailure(t *testing.T) {
	d := validDraft()
	for d.Step() < wizard.StepContact {
		assert.True(t, d.Continue())
	}
	assert.True(t, d.BeginSubmit())

	d.Finish(false)
	assert.Equal(t, wizard.PhaseFailed, d.Phase())

	d.Retry()
	assert.Equal(t, wizard.PhaseEditing, d.Phase())
	assert.Equal(t, wizard.StepContact, d.Step())

	// All fields survive the failed attempt
	assert.Equal(t, "John Smith", d.TargetName)
	assert.True(t, d.BeginSubmit())
}
