package recaptcha_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/httpclient"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/recaptcha"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *recaptcha.Verifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v := recaptcha.NewVerifier("test-secret", 0.5, httpclient.NewStandardClient())
	v.SetEndpoint(server.URL)
	return v
}

func TestVerify_Success(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.Form.Get("secret"))
		assert.Equal(t, "tok-abc", r.Form.Get("response"))
		fmt.Fprint(w, `{"success": true, "score": 0.9, "action": "submit_review"}`)
	})

	score, err := v.Verify("tok-abc", "submit_review")
	assert.NoError(t, err)
	assert.Equal(t, 0.9, score)
}

func TestVerify_LowScoreRejected(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "score": 0.2, "action": "submit_review"}`)
	})

	score, err := v.Verify("tok-abc", "submit_review")
	assert.ErrorIs(t, err, recaptcha.ErrRejected)
	assert.Equal(t, 0.2, score)
}

func TestVerify_FailureRejected(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": false, "error-codes": ["invalid-input-response"]}`)
	})

	_, err := v.Verify("bad-token", "submit_review")
	assert.ErrorIs(t, err, recaptcha.ErrRejected)
}

func TestVerify_ActionMismatchRejected(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "score": 0.9, "action": "login"}`)
	})

	_, err := v.Verify("tok-abc", "submit_review")
	assert.ErrorIs(t, err, recaptcha.ErrRejected)
}

func TestVerify_ServerErrorIsUnavailable(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := v.Verify("tok-abc", "submit_review")
	assert.ErrorIs(t, err, recaptcha.ErrUnavailable)
}

func TestVerify_UnreachableEndpointIsUnavailable(t *testing.T) {
	v := recaptcha.NewVerifier("test-secret", 0.5, httpclient.NewStandardClient())
	v.SetEndpoint("http://127.0.0.1:1")

	_, err := v.Verify("tok-abc", "submit_review")
	assert.ErrorIs(t, err, recaptcha.ErrUnavailable)
}

func TestVerify_BreakerOpensAfterRepeatedOutages(t *testing.T) {
	v := recaptcha.NewVerifier("test-secret", 0.5, httpclient.NewStandardClient())
	v.SetEndpoint("http://127.0.0.1:1")

	// Enough consecutive transport failures trip the breaker; the error
	// class stays ErrUnavailable either way.
	for i := 0; i < 5; i++ {
		_, err := v.Verify("tok-abc", "submit_review")
		assert.ErrorIs(t, err, recaptcha.ErrUnavailable)
	}
}
