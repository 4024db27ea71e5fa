// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"

	"github.com/shanerto/ama-tool-2/auth"
)

// VoterCookie is the long-lived, client-visible cookie holding the
// per-browser voter identity token.
const VoterCookie = "voter_token"

// voterCookieMaxAge keeps the identity stable for two years.
const voterCookieMaxAge = 2 * 365 * 24 * 60 * 60

// ResolveVoter returns the caller's voter identity, issuing a fresh
// token (and Set-Cookie) when the browser has none. Call it exactly once
// per request, before any read or write that touches votes or questions:
// the read path that lazily issues the cookie and the write path must
// attribute the same browser to the same identity.
//
// An incoming token is used as-is. There is nothing to verify: the token
// is a dedup device for anonymous browsers, not a credential.
func ResolveVoter(w http.ResponseWriter, r *http.Request) (voterID string, isNew bool) {
	if c, err := r.Cookie(VoterCookie); err == nil && looksLikeToken(c.Value) {
		return c.Value, false
	}

	token := auth.NewVoterToken()
	http.SetCookie(w, &http.Cookie{
		Name:     VoterCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   voterCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return token, true
}

// looksLikeToken rejects garbage values so a mangled cookie rotates to a
// fresh identity instead of polluting the vote table.
func looksLikeToken(v string) bool {
	if len(v) < 8 || len(v) > 128 {
		return false
	}
	for _, c := range v {
		ok := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') || c == '-' || c == '_'
		if !ok {
			return false
		}
	}
	return true
}
