package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/pantonshire/tweetbox/auth"
	"github.com/pantonshire/tweetbox/model"
)

// Access is the outcome of a relationship check.
type Access int

const (
	AccessGranted Access = iota
	AccessNotFound
	AccessForbidden
)

func (a Access) String() string {
	switch a {
	case AccessGranted:
		return "granted"
	case AccessNotFound:
		return "not found"
	}
	return "forbidden"
}

// RelationshipStore resolves tweet ownership and follow edges.
type RelationshipStore interface {
	TweetOwner(ctx context.Context, tweetID uint) (uint, error)
	Follows(ctx context.Context, followerID, followingID uint) (bool, error)
}

// Authorizer decides whether a caller may see a tweet: only followers of
// the tweet's owner may. Owners are not special-cased, so reading your own
// tweet requires following yourself.
type Authorizer struct {
	store RelationshipStore
}

func NewAuthorizer(store RelationshipStore) *Authorizer {
	return &Authorizer{store: store}
}

func (a *Authorizer) MayAccessTweet(ctx context.Context, callerID, tweetID uint) (Access, error) {
	ownerID, err := a.store.TweetOwner(ctx, tweetID)
	if errors.Is(err, model.ErrNotFound) {
		return AccessNotFound, nil
	}
	if err != nil {
		return AccessForbidden, err
	}
	follows, err := a.store.Follows(ctx, callerID, ownerID)
	if err != nil {
		return AccessForbidden, err
	}
	if !follows {
		return AccessForbidden, nil
	}
	return AccessGranted, nil
}

type tweetIDKey struct{}

func tweetIDParam(request *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(request, "tweetID"), 10, 32)
	if err != nil || id == 0 {
		return 0, errBadTweetID
	}
	return uint(id), nil
}

func tweetIDFromContext(ctx context.Context) uint {
	id, _ := ctx.Value(tweetIDKey{}).(uint)
	return id
}

// requireTweetAccess gates every tweet-scoped route behind the Authorizer.
// A missing tweet and a tweet whose owner the caller does not follow are
// indistinguishable to the client.
func (api *API) requireTweetAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		tweetID, err := tweetIDParam(request)
		if err != nil {
			api.fail(writer, request, err)
			return
		}
		caller, _ := auth.FromContext(request.Context())

		access, err := api.authorizer.MayAccessTweet(request.Context(), caller.UserID, tweetID)
		if err != nil {
			api.fail(writer, request, err)
			return
		}
		if access != AccessGranted {
			api.log.Debugf("user %d denied tweet %d: %s", caller.UserID, tweetID, access)
			api.fail(writer, request, errInvalidAccess)
			return
		}

		ctx := context.WithValue(request.Context(), tweetIDKey{}, tweetID)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
