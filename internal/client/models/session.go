// Package models defines the session types shared by the token store,
// the session manager and the API client.
package models

import "time"

// UserProfile is the authenticated user as reported by the backend.
// It is opaque to the HTTP client and read-only outside the session manager.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// FullName returns "First Last" with missing parts omitted.
func (u UserProfile) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Session holds the credentials of the single active session.
// It is owned by the session manager, persisted via the token store and
// mutated only by login/refresh/logout transitions.
type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	User         UserProfile `json:"user"`
	ObtainedAt   time.Time   `json:"obtainedAt"`
}

// RefreshCredential returns the credential to submit to the refresh endpoint:
// the dedicated refresh token when the backend issued one, otherwise the
// access token itself (some deployments rotate a single token).
func (s *Session) RefreshCredential() string {
	if s.RefreshToken != "" {
		return s.RefreshToken
	}
	return s.AccessToken
}
