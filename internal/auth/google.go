// Package auth handles the Google OAuth flow and session bookkeeping for
// per-user Gmail access.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Scopes requested from Google: enough to create drafts and to read the
// user's own address, nothing more.
var scopes = []string{
	gmailapi.GmailComposeScope,
	"https://www.googleapis.com/auth/userinfo.email",
}

// AuthError reports a failed step of the OAuth flow.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth: %s: %v", e.Message, e.Cause)
	}
	return "auth: " + e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// GoogleAuthenticator drives the OAuth authorization-code flow and turns
// completed exchanges into stored sessions.
type GoogleAuthenticator struct {
	cfg   *oauth2.Config
	store Store
	log   *zap.Logger
}

// OAuthConfig builds the oauth2 configuration used by both the web flow
// and the CLI login flow.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}

// NewGoogleAuthenticator wires client credentials and a session store into
// an authenticator using Google's standard endpoint.
func NewGoogleAuthenticator(clientID, clientSecret, redirectURL string, store Store, log *zap.Logger) *GoogleAuthenticator {
	return &GoogleAuthenticator{
		cfg:   OAuthConfig(clientID, clientSecret, redirectURL),
		store: store,
		log:   log,
	}
}

// AuthURL returns the consent-screen URL for the given anti-forgery state.
// Offline access is requested so the stored token can be refreshed.
func (a *GoogleAuthenticator) AuthURL(state string) string {
	return a.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange redeems an authorization code, resolves the user's email, and
// stores a fresh session. Returns the session for cookie issuance.
func (a *GoogleAuthenticator) Exchange(ctx context.Context, code string) (*Session, error) {
	token, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, &AuthError{Message: "code exchange failed", Cause: err}
	}

	session := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now(),
	}

	email, err := a.lookupEmail(ctx, session)
	if err != nil {
		return nil, err
	}
	session.Email = email

	a.store.Put(session)
	a.log.Info("session created", zap.String("email", email))
	return session, nil
}

// Client returns an HTTP client that authenticates as the session's user,
// refreshing the token as needed.
func (a *GoogleAuthenticator) Client(ctx context.Context, session *Session) *http.Client {
	return a.cfg.Client(ctx, session.Token)
}

// Logout drops the session.
func (a *GoogleAuthenticator) Logout(sessionID string) {
	a.store.Delete(sessionID)
	a.log.Info("session removed", zap.String("sessionId", sessionID))
}

// Lookup returns the stored session for an ID.
func (a *GoogleAuthenticator) Lookup(sessionID string) (*Session, bool) {
	return a.store.Get(sessionID)
}

func (a *GoogleAuthenticator) lookupEmail(ctx context.Context, session *Session) (string, error) {
	api, err := gmailapi.NewService(ctx,
		option.WithHTTPClient(a.cfg.Client(ctx, session.Token)))
	if err != nil {
		return "", &AuthError{Message: "could not build gmail client", Cause: err}
	}
	profile, err := api.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", &AuthError{Message: "could not read user profile", Cause: err}
	}
	return profile.EmailAddress, nil
}
