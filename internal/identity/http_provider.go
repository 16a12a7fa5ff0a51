package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPProvider implements Provider against the identity provider's REST API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider constructs an HTTPProvider.
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateAccount registers a new customer account with the provider.
func (p *HTTPProvider) CreateAccount(ctx context.Context, email, senha string) (*Account, error) {
	payload := map[string]string{"email": email, "password": senha}
	var account Account
	status, err := p.do(ctx, http.MethodPost, "/v1/accounts", payload, &account)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK, http.StatusCreated:
		return &account, nil
	case http.StatusConflict:
		return nil, ErrEmailExists
	default:
		return nil, fmt.Errorf("identity create account: status %d", status)
	}
}

// AccountByEmail looks up a provider account by email.
func (p *HTTPProvider) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	path := "/v1/accounts/lookup?email=" + url.QueryEscape(email)
	var account Account
	status, err := p.do(ctx, http.MethodGet, path, nil, &account)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &account, nil
	case http.StatusNotFound:
		return nil, ErrAccountNotFound
	default:
		return nil, fmt.Errorf("identity lookup: status %d", status)
	}
}

// MintCustomToken asks the provider for a token carrying the given claims.
func (p *HTTPProvider) MintCustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error) {
	payload := map[string]interface{}{"uid": uid, "claims": claims}
	var body struct {
		Token string `json:"token"`
	}
	status, err := p.do(ctx, http.MethodPost, "/v1/token:mint", payload, &body)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("identity mint token: status %d", status)
	}
	return body.Token, nil
}

// VerifyToken validates a provider-issued token and returns its identity.
func (p *HTTPProvider) VerifyToken(ctx context.Context, token string) (*VerifiedToken, error) {
	payload := map[string]string{"token": token}
	var verified VerifiedToken
	status, err := p.do(ctx, http.MethodPost, "/v1/token:verify", payload, &verified)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &verified, nil
	case http.StatusUnauthorized, http.StatusBadRequest:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity verify token: status %d", status)
	}
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, payload, dest interface{}) (int, error) {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if dest != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return resp.StatusCode, fmt.Errorf("decode identity response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
