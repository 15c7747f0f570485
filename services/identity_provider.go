// Package services: services/identity_provider.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"chapel-site/models"
)

// defaultIdentityEndpoint is the Identity Toolkit REST base URL. The Admin
// SDK has no email/password sign-in (that is a client capability), so the
// gate talks to the REST endpoint directly with the project's web API key.
const defaultIdentityEndpoint = "https://identitytoolkit.googleapis.com"

// googleUserinfoURL returns the signed-in Google profile after an OAuth
// code exchange.
const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthError is a provider failure carrying the provider's error code.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth provider error: %s", e.Code)
}

// IdentityToolkitProvider implements AuthProvider against the Firebase
// Identity Toolkit REST API.
type IdentityToolkitProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewIdentityToolkitProvider builds the provider for the given web API key.
func NewIdentityToolkitProvider(apiKey string) *IdentityToolkitProvider {
	return &IdentityToolkitProvider{
		apiKey:   apiKey,
		endpoint: defaultIdentityEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewIdentityToolkitProviderAt is like NewIdentityToolkitProvider with an
// overridable endpoint, used by tests against httptest servers.
func NewIdentityToolkitProviderAt(apiKey, endpoint string) *IdentityToolkitProvider {
	p := NewIdentityToolkitProvider(apiKey)
	p.endpoint = endpoint
	return p
}

type identityRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type identityResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Error       *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword calls accounts:signInWithPassword.
func (p *IdentityToolkitProvider) SignInWithPassword(ctx context.Context, email, password string) (models.Identity, error) {
	return p.call(ctx, "accounts:signInWithPassword", email, password)
}

// SignUp calls accounts:signUp, which also signs the new account in.
func (p *IdentityToolkitProvider) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	return p.call(ctx, "accounts:signUp", email, password)
}

func (p *IdentityToolkitProvider) call(ctx context.Context, verb, email, password string) (models.Identity, error) {
	if p.apiKey == "" {
		return models.Identity{}, ErrNotConfigured
	}

	body, err := json.Marshal(identityRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return models.Identity{}, err
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", p.endpoint, verb, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return models.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.Identity{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.Identity{}, err
	}

	if resp.StatusCode != http.StatusOK {
		code := "UNKNOWN"
		if parsed.Error != nil {
			code = parsed.Error.Message
		}
		return models.Identity{}, &AuthError{Code: code}
	}

	return models.Identity{
		UID:         parsed.LocalID,
		Email:       parsed.Email,
		DisplayName: parsed.DisplayName,
	}, nil
}

// exchangeGoogleCode swaps the OAuth authorization code for the Google
// profile of the signed-in account.
func exchangeGoogleCode(ctx context.Context, cfg *oauth2.Config, code string) (models.Identity, error) {
	if cfg == nil || cfg.ClientID == "" {
		return models.Identity{}, ErrNotConfigured
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return models.Identity{}, fmt.Errorf("code exchange: %w", err)
	}

	resp, err := cfg.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return models.Identity{}, fmt.Errorf("userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.Identity{}, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.Identity{}, err
	}

	return models.Identity{
		UID:         info.ID,
		Email:       info.Email,
		DisplayName: info.Name,
		PhotoURL:    info.Picture,
	}, nil
}
