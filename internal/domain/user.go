package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for a participant. Production tokens
// come from the identity provider; this is used by local tooling.
type TokenIssuer interface {
	Issue(userID string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
