// Package auth issues and verifies session tokens and carries the
// resulting session as an explicit value. There is no ambient token state:
// a session is issued at login, passed through context by the HTTP layer,
// and gone when the request ends.
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/casefall/casefall/internal/domain"
)

// Session identifies an authenticated user for the duration of a request.
type Session struct {
	UserID   uuid.UUID
	Username string
	Email    string
}

type ctxKey struct{}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFromContext extracts the session, failing with ErrUnauthenticated
// when none is present. Services take the session explicitly; this helper
// is for the HTTP boundary only.
func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok {
		return Session{}, domain.ErrUnauthenticated
	}
	return s, nil
}
