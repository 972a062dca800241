// Package wizard implements the four-step review draft state machine.
// The same machine runs on the client and is replayed server-side at
// submission time, so a draft that skipped a step's validation can never
// reach the orchestrator.
package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
)

// Step identifies one of the four wizard steps
type Step int

const (
	StepExperience Step = iota + 1 // target name, narrative, overall rating
	StepContext                    // state, claim type
	StepOutcome                    // claim outcome, recommend
	StepContact                    // all optional
)

const (
	firstStep = StepExperience
	lastStep  = StepContact
)

// Phase tracks the draft's life after the stepping states
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

const (
	// MinNarrativeLen is the minimum narrative length required to leave step 1
	MinNarrativeLen = 20
	// MaxNarrativeLen caps the narrative; input past the cap is truncated, not rejected
	MaxNarrativeLen = 500
	// MaxSecondaryLen caps the secondary free-text field
	MaxSecondaryLen = 300
	// MaxRating is the top of the star scale; 0 means unset
	MaxRating = 5
)

// Rules carries the per-entity-type enumerations the wizard validates
// against
type Rules struct {
	ClaimTypes []string
	Outcomes   []string
}

// Draft is the transient, client-held aggregate of all step inputs. All
// rating fields use 0 for unset; text setters clamp rather than error.
// Discarded on navigation away or successful submission, never persisted
// as-is.
type Draft struct {
	step  Step
	phase Phase
	// last validation failure; a single message, most recent wins
	errMsg string

	rules Rules

	// Step 1
	TargetName    string
	EntityID      string // set when an existing entity was selected
	CompanyName   string
	narrative     string
	secondary     string
	OverallRating int

	// Step 2
	State     string
	City      string
	ClaimType string

	// Step 3
	ClaimOutcome    string
	Recommend       string // "yes" | "no"
	Communication   int
	Fairness        int
	Speed           int
	Professionalism int

	// Step 4 (all optional)
	Email        string
	FirstName    string
	ReviewerRole string
	OptIn        bool

	// Honeypot. UI-only field, invisible to humans.
	Honeypot string
}

// NewDraft creates an empty draft positioned on step 1
func NewDraft(rules Rules) *Draft {
	return &Draft{
		step:  firstStep,
		phase: PhaseEditing,
		rules: rules,
	}
}

// Step returns the current step
func (d *Draft) Step() Step { return d.step }

// Phase returns the current lifecycle phase
func (d *Draft) Phase() Phase { return d.phase }

// Err returns the last validation message, or "" when the last
// transition succeeded
func (d *Draft) Err() string { return d.errMsg }

// SetNarrative clamps input to MaxNarrativeLen as it is typed
func (d *Draft) SetNarrative(s string) {
	d.narrative = clamp(s, MaxNarrativeLen)
}

// Narrative returns the clamped narrative text
func (d *Draft) Narrative() string { return d.narrative }

// SetSecondary clamps input to MaxSecondaryLen
func (d *Draft) SetSecondary(s string) {
	d.secondary = clamp(s, MaxSecondaryLen)
}

// Secondary returns the clamped secondary text
func (d *Draft) Secondary() string { return d.secondary }

func clamp(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Continue validates only the current step's fields and advances on
// success. On failure the step does not change and Err carries one
// user-visible message.
func (d *Draft) Continue() bool {
	if d.phase != PhaseEditing || d.step >= lastStep {
		return false
	}

	if msg := d.validateStep(d.step); msg != "" {
		d.errMsg = msg
		return false
	}

	d.errMsg = ""
	d.step++
	return true
}

// Back moves to the previous step. Always succeeds from steps 2-4 and
// never alters any entered field.
func (d *Draft) Back() {
	if d.phase != PhaseEditing || d.step <= firstStep {
		return
	}
	d.errMsg = ""
	d.step--
}

// BeginSubmit validates the terminal step and moves the draft to the
// submitting phase. Step 4 has no required fields, so from step 4 this
// always succeeds.
func (d *Draft) BeginSubmit() bool {
	if d.phase != PhaseEditing || d.step != lastStep {
		d.errMsg = "Please complete all steps before submitting."
		return false
	}
	if msg := d.validateStep(lastStep); msg != "" {
		d.errMsg = msg
		return false
	}
	d.errMsg = ""
	d.phase = PhaseSubmitting
	return true
}

// Finish records the terminal outcome of a submission
func (d *Draft) Finish(succeeded bool) {
	if d.phase != PhaseSubmitting {
		return
	}
	if succeeded {
		d.phase = PhaseSucceeded
	} else {
		d.phase = PhaseFailed
	}
}

// Retry returns a failed draft to the terminal step for another attempt
func (d *Draft) Retry() {
	if d.phase == PhaseFailed {
		d.phase = PhaseEditing
		d.errMsg = ""
	}
}

func (d *Draft) validateStep(step Step) string {
	switch step {
	case StepExperience:
		if strings.TrimSpace(d.TargetName) == "" {
			return "Please enter who this review is about."
		}
		if utf8.RuneCountInString(strings.TrimSpace(d.narrative)) < MinNarrativeLen {
			return "Please tell us a bit more about your experience (at least 20 characters)."
		}
		if d.OverallRating < 1 || d.OverallRating > MaxRating {
			return "Please select an overall star rating."
		}
	case StepContext:
		if !models.ValidState(d.State) {
			return "Please select the state where your claim was handled."
		}
		if !containsFold(d.rules.ClaimTypes, d.ClaimType) {
			return "Please select a claim type."
		}
	case StepOutcome:
		if !containsFold(d.rules.Outcomes, d.ClaimOutcome) {
			return "Please select how your claim turned out."
		}
		if d.Recommend != "yes" && d.Recommend != "no" {
			return "Please tell us whether you would recommend them."
		}
		for _, r := range []int{d.Communication, d.Fairness, d.Speed, d.Professionalism} {
			if r < 0 || r > MaxRating {
				return "Sub-ratings must be between 1 and 5 stars."
			}
		}
	case StepContact:
		// No required fields. Email format is guarded at binding time.
	}
	return ""
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
