// Package cookie owns the guest_token cookie: reading it off requests and
// applying the cart resolver's cookie directives to responses.
package cookie

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// GuestTokenCookie is the cookie carrying a guest's cart token.
const GuestTokenCookie = "guest_token"

// GuestTokenTTL is how long the cookie lives. Thirty days matches the
// longest plausible abandoned-cart window.
const GuestTokenTTL = 30 * 24 * time.Hour

// GuestToken reads the guest token cookie. Returns nil when the cookie is
// absent or does not parse as a UUID; a malformed cookie is treated the same
// as no cookie.
func GuestToken(r *http.Request) *uuid.UUID {
	c, err := r.Cookie(GuestTokenCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	token, err := uuid.Parse(c.Value)
	if err != nil {
		return nil
	}
	return &token
}

// Apply translates a cookie directive into a Set-Cookie header. CookieNone
// leaves the response alone.
func Apply(w http.ResponseWriter, d domain.CookieDirective) {
	switch d.Action {
	case domain.CookieSetGuestToken:
		http.SetCookie(w, &http.Cookie{
			Name:     GuestTokenCookie,
			Value:    d.Token.String(),
			Path:     "/",
			MaxAge:   int(GuestTokenTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	case domain.CookieClearGuestToken:
		http.SetCookie(w, &http.Cookie{
			Name:     GuestTokenCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
