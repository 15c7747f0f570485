// Package services: services/auth_service.go
package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"chapel-site/logger"
	"chapel-site/models"
	"chapel-site/notify"
)

// Provider error codes the gate special-cases. The auth/* codes are the
// provider's own identifiers; access_denied is what the OAuth redirect flow
// reports when the user backs out at the consent screen.
const (
	errPopupClosed        = "auth/popup-closed-by-user"
	errCancelledPopup     = "auth/cancelled-popup-request"
	errPopupBlocked       = "auth/popup-blocked"
	errUnauthorizedDomain = "auth/unauthorized-domain"
	errAccessDenied       = "access_denied"
)

// AuthProvider performs email/password sign-in against the identity backend.
type AuthProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (models.Identity, error)
	SignUp(ctx context.Context, email, password string) (models.Identity, error)
}

// googleExchangeFunc turns an OAuth authorization code into an identity.
// A variable so tests can stub the network exchange.
var googleExchangeFunc = exchangeGoogleCode

// AuthServiceInterface is what the controllers program against.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (models.Identity, bool)
	Signup(ctx context.Context, email, password string) (models.Identity, bool)
	LoginWithGoogle(ctx context.Context, code, providerErr string) (models.Identity, bool)
	GoogleAuthURL(state string) string
	Logout()
}

// AuthService is the session gate. Every verb reports success with a boolean
// and keeps provider errors to itself; the returned identity is what the
// caller stores in the session. The service holds no identity state of its
// own - the session cookie is the single place a signed-in user lives.
type AuthService struct {
	provider AuthProvider
	notifier notify.Notifier
	google   *oauth2.Config

	// optional bootstrap admin, checked before the remote provider
	adminEmail string
	adminHash  string
}

// NewAuthService wires the password provider, the Google OAuth config and
// the optional local admin credential.
func NewAuthService(p AuthProvider, g *oauth2.Config, n notify.Notifier, adminEmail, adminHash string) *AuthService {
	return &AuthService{
		provider:   p,
		notifier:   n,
		google:     g,
		adminEmail: adminEmail,
		adminHash:  adminHash,
	}
}

// Login signs in with email and password. Provider errors are logged and
// reported as a plain false so callers can re-render the form.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Identity, bool) {
	if email == "" || password == "" {
		return models.Identity{}, false
	}

	if s.adminEmail != "" && email == s.adminEmail && checkPasswordHash(password, s.adminHash) {
		logger.Info.Printf("Login: bootstrap admin %s signed in", email)
		return models.Identity{UID: "local-admin", Email: email, DisplayName: "Site Admin"}, true
	}

	identity, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		logger.Warn.Printf("Login: sign-in failed for %s: %v", email, err)
		return models.Identity{}, false
	}
	return identity, true
}

// Signup creates an email/password account and signs it in.
func (s *AuthService) Signup(ctx context.Context, email, password string) (models.Identity, bool) {
	if email == "" || password == "" {
		return models.Identity{}, false
	}

	identity, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		logger.Warn.Printf("Signup: failed for %s: %v", email, err)
		return models.Identity{}, false
	}
	return identity, true
}

// LoginWithGoogle completes federated sign-in. providerErr, when set, is the
// provider's error code from the redirect; it is classified into silent,
// cancellation, actionable and generic outcomes before any exchange happens.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code, providerErr string) (models.Identity, bool) {
	if providerErr != "" {
		s.classifyGoogleError(providerErr)
		return models.Identity{}, false
	}

	if code == "" {
		s.notifier.Error("Google sign-in failed")
		return models.Identity{}, false
	}

	identity, err := googleExchangeFunc(ctx, s.google, code)
	if err != nil {
		logger.Error.Printf("LoginWithGoogle: exchange failed: %v", err)
		s.notifier.Error("Google sign-in failed")
		return models.Identity{}, false
	}
	return identity, true
}

// GoogleAuthURL builds the consent-screen URL for federated sign-in. The
// account chooser is always prompted, matching the provider behaviour the
// site was built around.
func (s *AuthService) GoogleAuthURL(state string) string {
	if s.google == nil || s.google.ClientID == "" {
		return ""
	}
	return s.google.AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Logout is a no-op at this layer: the identity lives in the session cookie,
// which the controller clears. Logging out while signed out is a success.
func (s *AuthService) Logout() {
	logger.Debug.Println("Logout: session identity cleared by caller")
}

// classifyGoogleError maps provider codes onto user-facing outcomes.
func (s *AuthService) classifyGoogleError(code string) {
	switch code {
	case errPopupClosed, errAccessDenied:
		// user-initiated cancel: one cancellation notice, not a failure
		s.notifier.Info("Sign-in cancelled")
	case errCancelledPopup:
		// Treated as silently ignorable, matching the original behaviour.
		// TODO: product review - this may mask genuine failures.
		logger.Debug.Printf("classifyGoogleError: ignoring %s", code)
	case errPopupBlocked:
		s.notifier.Error("Pop-up was blocked. Allow pop-ups for this site and try again.")
	case errUnauthorizedDomain:
		s.notifier.Error("This domain is not authorised for Google sign-in. Contact the site administrator.")
	default:
		s.notifier.Error("Google sign-in failed")
	}
}

// checkPasswordHash verifies a plain-text password against a bcrypt hash.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ErrNotConfigured is returned by providers missing their backend settings.
var ErrNotConfigured = errors.New("auth provider not configured")
