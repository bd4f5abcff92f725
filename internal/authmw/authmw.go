// Package authmw provides HTTP middleware for bearer token authentication.
package authmw

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const challenge = `Bearer realm="pairgroups"`

// ParseTokens splits a comma-separated token list, dropping blanks. Several
// tokens may be active at once so clients can rotate without downtime.
func ParseTokens(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// BearerToken returns middleware that validates the Authorization header
// carries a Bearer token matching one of tokens. Every token is compared in
// constant time so the match position does not leak. Empty tokens are ignored;
// with none left every request is rejected.
func BearerToken(tokens ...string) func(http.Handler) http.Handler {
	expected := make([][]byte, 0, len(tokens))
	for _, tok := range tokens {
		if tok != "" {
			expected = append(expected, []byte(tok))
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")

			if !strings.HasPrefix(auth, "Bearer ") {
				w.Header().Set("WWW-Authenticate", challenge)
				http.Error(w, `{"error":"missing or malformed authorization header"}`, http.StatusUnauthorized)
				return
			}

			got := []byte(auth[len("Bearer "):])

			match := 0
			for _, want := range expected {
				match |= subtle.ConstantTimeCompare(got, want)
			}
			if match != 1 {
				w.Header().Set("WWW-Authenticate", challenge+`, error="invalid_token"`)
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
