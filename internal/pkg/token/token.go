package token

import (
	"errors"

	"freshfold-web/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("token is invalid")

// Claims represents the decoded payload of a session token. Tokens are
// issued and signed by the external login flow; this front end only decodes
// them, so the trust boundary is the server that issued them.
type Claims struct {
	UserID   uint   `json:"user_id"`
	BranchID uint   `json:"branch_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CookieSource is the subset of *fiber.Ctx the reader needs. Tests supply
// a plain map-backed implementation.
type CookieSource interface {
	Cookies(key string, defaultValue ...string) string
}

// decode parses a token without verifying its signature. Verification
// happened server-side when the token was issued; the cookie copy is only
// inspected for its claims.
func decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// FromCookies reads the per-role token cookies ("<Role>Token") and decodes
// each one. A token that fails to decode excludes only that role's entry.
// Returns nil when no role yields a decodable token, which callers treat
// as "no session". Storage is re-read on every call; nothing is cached.
func FromCookies(src CookieSource) map[domain.Role]*Claims {
	tokens := make(map[domain.Role]*Claims)
	for _, role := range domain.AllRoles {
		raw := src.Cookies(role.TokenCookie())
		if raw == "" {
			continue
		}
		claims, err := decode(raw)
		if err != nil {
			continue
		}
		tokens[role] = claims
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Permitted reports whether at least one decoded token carries a role that
// is a member of allowed. A nil token set always denies. Pure predicate:
// redirecting is the caller's job.
func Permitted(tokens map[domain.Role]*Claims, allowed ...domain.Role) bool {
	if tokens == nil {
		return false
	}
	for _, claims := range tokens {
		for _, role := range allowed {
			if claims.Role == string(role) {
				return true
			}
		}
	}
	return false
}

// First returns the claims of the first allowed role present in the token
// set, scanning roles in their fixed order so the pick is deterministic.
func First(tokens map[domain.Role]*Claims, allowed ...domain.Role) *Claims {
	for _, role := range domain.AllRoles {
		claims, ok := tokens[role]
		if !ok {
			continue
		}
		for _, want := range allowed {
			if claims.Role == string(want) {
				return claims
			}
		}
	}
	return nil
}
