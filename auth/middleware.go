package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/pantonshire/tweetbox/strutils"
)

type contextKey string

const identityKey contextKey = "identity"

// Verifier checks a raw token string.
type Verifier interface {
	Verify(token string) (Identity, error)
}

func NewContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	scheme, token := strutils.SplitOnSeps(strings.TrimSpace(header), 1, " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	if !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidToken
	}
	return token, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's Identity in the request context otherwise. onError writes the
// rejection.
func Middleware(v Verifier, onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				onError(w, r, err)
				return
			}
			identity, err := v.Verify(token)
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), identity)))
		})
	}
}
