package domain

import "time"

// Session is a refresh credential stored server-side; the short-lived access
// token itself is a stateless JWT.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return s == nil || now.After(s.ExpiresAt)
}
