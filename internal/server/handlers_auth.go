package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stateCookie = "oauth_state"

// handleAuthURL issues the Google consent URL together with an anti-forgery
// state pinned in a short-lived cookie.
func (s *Server) handleAuthURL(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.jsonResponse(w, http.StatusOK, map[string]string{"authUrl": s.auth.AuthURL(state)})
}

// handleAuthCallback completes the OAuth flow: verifies state, exchanges
// the code, and sets the session cookie.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.errorResponse(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	stateParam := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if err != nil || stateParam == "" || cookie.Value != stateParam {
		s.errorResponse(w, http.StatusBadRequest, "state mismatch")
		return
	}

	session, err := s.auth.Exchange(r.Context(), code)
	if err != nil {
		s.log.Error("oauth exchange failed", zap.Error(err))
		s.errorResponse(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"email":         session.Email,
	})
}

// handleAuthStatus reports whether the caller holds a valid session.
func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil {
		if session, ok := s.auth.Lookup(cookie.Value); ok {
			s.jsonResponse(w, http.StatusOK, map[string]any{
				"authenticated": true,
				"email":         session.Email,
			})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"authenticated": false})
}

// handleLogout drops the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.auth.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}
