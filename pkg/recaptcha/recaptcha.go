package recaptcha

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/httpclient"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
)

const (
	googleVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

	// DefaultScoreThreshold is the v3 trust score below which a verified
	// token is still rejected.
	DefaultScoreThreshold = 0.5
)

var (
	// ErrRejected means Google explicitly failed the token or returned a
	// score below the threshold. Callers must block the submission.
	ErrRejected = errors.New("recaptcha verification rejected")

	// ErrUnavailable means the verification endpoint could not be reached
	// or returned garbage. Callers must fail open: an outage of the
	// verification dependency must not lock out genuine users.
	ErrUnavailable = errors.New("recaptcha verification unavailable")
)

// Response represents the response from Google's reCAPTCHA v3 verification API
type Response struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier handles reCAPTCHA v3 verification with a circuit breaker around
// the Google endpoint. Transport faults count against the breaker;
// explicit rejections do not (the dependency is healthy, the token is bad).
type Verifier struct {
	secretKey  string
	verifyURL  string
	threshold  float64
	httpClient httpclient.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewVerifier creates a new reCAPTCHA verifier
func NewVerifier(secretKey string, threshold float64, httpClient httpclient.Client) *Verifier {
	if threshold <= 0 {
		threshold = DefaultScoreThreshold
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "recaptcha",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Verifier{
		secretKey:  secretKey,
		verifyURL:  googleVerifyURL,
		threshold:  threshold,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

// SetEndpoint overrides the verification endpoint. Used in tests.
func (v *Verifier) SetEndpoint(endpoint string) {
	v.verifyURL = endpoint
}

// Verify checks a v3 token against Google's verification API.
// Returns the trust score on success. The error is always one of the two
// sentinels (possibly wrapped): ErrRejected when the token failed
// verification or scored below the threshold, ErrUnavailable when the
// dependency itself could not answer.
func (v *Verifier) Verify(token, action string) (float64, error) {
	raw, err := v.breaker.Execute(func() (interface{}, error) {
		return v.callVerifyEndpoint(token)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, fmt.Errorf("circuit open: %w", ErrUnavailable)
		}
		return 0, fmt.Errorf("%v: %w", err, ErrUnavailable)
	}

	result := raw.(*Response)

	if !result.Success {
		return 0, fmt.Errorf("error codes %v: %w", result.ErrorCodes, ErrRejected)
	}
	if action != "" && result.Action != action {
		return result.Score, fmt.Errorf("action mismatch %q: %w", result.Action, ErrRejected)
	}
	if result.Score < v.threshold {
		return result.Score, fmt.Errorf("score %.2f below threshold %.2f: %w", result.Score, v.threshold, ErrRejected)
	}

	return result.Score, nil
}

// callVerifyEndpoint posts the token to Google. Only transport-level
// failures return an error here, so the breaker trips on outages and not
// on bad tokens.
func (v *Verifier) callVerifyEndpoint(token string) (*Response, error) {
	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)

	resp, err := v.httpClient.Post(
		v.verifyURL,
		"application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reach verification endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("verification endpoint returned status %d", resp.StatusCode)
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode verification response: %w", err)
	}

	return &result, nil
}
