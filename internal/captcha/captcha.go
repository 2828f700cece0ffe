// Package captcha verifies challenge response tokens against the external
// verification service.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks CAPTCHA response tokens. A Verifier with an empty secret
// is disabled and accepts everything, so deployments without a CAPTCHA
// keep working.
type Verifier struct {
	httpClient *http.Client
	verifyURL  string
	secret     string
}

// New creates a verifier. verifyURL is the service's verification endpoint.
func New(verifyURL, secret string) *Verifier {
	return &Verifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		verifyURL:  verifyURL,
		secret:     secret,
	}
}

// Enabled reports whether verification is configured.
func (v *Verifier) Enabled() bool {
	return v.secret != ""
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// Verify checks a response token with the external service. Returns false
// for an invalid token, an error only when the service itself fails.
func (v *Verifier) Verify(ctx context.Context, token string) (bool, error) {
	if !v.Enabled() {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("creating verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("verifying captcha: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verifying captcha: unexpected status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return false, fmt.Errorf("decoding verify response: %w", err)
	}
	return vr.Success, nil
}
