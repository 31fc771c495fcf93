package httputil

import (
	"errors"
	"net/http"
	"strings"
)

const (
	TokenQueryParam = "token"
	ViewCookieName  = "view_token"
)

var ErrNoToken = errors.New("no token found in header, query or cookie")

// GetTokenFromRequest extracts a token from the Authorization header,
// the token query parameter or the view_token cookie, in that order.
func GetTokenFromRequest(r *http.Request) (string, error) {
	// Support "Bearer <token>" format
	if authHeader := strings.TrimSpace(r.Header.Get("Authorization")); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token), nil
		}
		return authHeader, nil
	}

	// Browsers cannot set headers on websocket upgrades or plain links
	if token := r.URL.Query().Get(TokenQueryParam); token != "" {
		return token, nil
	}

	if cookie, err := r.Cookie(ViewCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoToken
}
