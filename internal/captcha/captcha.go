package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is Google's reCAPTCHA verification endpoint.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// verifyTimeout bounds the outbound verification call. A slow or
// unreachable verification service counts as a failed check.
const verifyTimeout = 5 * time.Second

// ErrVerificationFailed means the service answered but rejected the response token.
var ErrVerificationFailed = errors.New("captcha verification failed")

// ==========================
// Verifier
// ==========================
// Verifier checks a client-supplied challenge response against the external
// verification service. It fails closed: any network error, non-2xx status,
// or non-success reply rejects the login attempt.
type Verifier struct {
	Secret    string
	VerifyURL string
	Client    *http.Client
}

func New(secret, verifyURL string) *Verifier {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	return &Verifier{
		Secret:    secret,
		VerifyURL: verifyURL,
		Client:    &http.Client{Timeout: verifyTimeout},
	}
}

// Verify posts the response token with the server secret and returns nil
// only when the service reports success.
func (v *Verifier) Verify(ctx context.Context, response string) error {
	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", response)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrVerificationFailed
	}

	var out struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		return ErrVerificationFailed
	}
	return nil
}
