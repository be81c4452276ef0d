package storefront

import "net/http"

// SessionCookieName is the cookie carrying the cart session token.
const SessionCookieName = "cardap_session"

// GetSessionToken retrieves the cart session token from the request cookie.
// Returns empty string if the cookie is not present.
func GetSessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie sets the cart session cookie with appropriate security
// settings.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
