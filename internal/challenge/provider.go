package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrProviderUnavailable indicates the verification provider could not
// deliver an answer. Callers must treat it as a failed challenge.
var ErrProviderUnavailable = errors.New("challenge provider unavailable")

// maxResponseBytes caps how much of the provider response is read.
const maxResponseBytes = 64 * 1024

// Config holds the provider endpoint and shared secret.
type Config struct {
	VerifyURL string
	Secret    string
	Timeout   time.Duration
}

// Provider verifies challenge tokens against the external provider.
type Provider struct {
	config Config
	client *http.Client
}

// NewProvider validates cfg and returns a Provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.VerifyURL == "" {
		return nil, errors.New("challenge verify URL required")
	}
	if _, err := url.ParseRequestURI(cfg.VerifyURL); err != nil {
		return nil, fmt.Errorf("invalid challenge verify URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Provider{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type verifyResponse struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}

// Verify posts the challenge token to the provider and returns the
// binary outcome. Any transport error, timeout, or undecodable body is
// returned as ErrProviderUnavailable; the caller denies the step-up.
func (p *Provider) Verify(ctx context.Context, challengeToken string) (bool, error) {
	if challengeToken == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", p.config.Secret)
	form.Set("response", challengeToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var decoded verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return false, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return decoded.Success, nil
}
