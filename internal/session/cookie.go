// Package session builds the cookies the board UI stores client-side
// preferences in.
package session

import (
	"net/http"
	"time"
)

// NewCookie returns a cookie named name that expires days after now. The
// cookie is site-wide and SameSite=Strict.
func NewCookie(name, value string, days int, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(time.Duration(days) * 24 * time.Hour).UTC(),
		SameSite: http.SameSiteStrictMode,
	}
}
