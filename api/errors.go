package api

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindCredentials
	KindAuthentication
	KindAuthorization
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCredentials:
		return "credentials"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not found"
	}
	return "internal"
}

// Status is the HTTP status a Kind is answered with. Failed logins answer
// 400 rather than 401.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindCredentials:
		return http.StatusBadRequest
	case KindAuthentication, KindAuthorization:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Error is a failure that can be shown to the client. Message is sent as
// the response body; Err is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) message() string {
	if e.Kind == KindInternal || e.Message == "" {
		return http.StatusText(http.StatusInternalServerError)
	}
	return e.Message
}

var (
	errBadBody       = &Error{Kind: KindValidation, Message: "Invalid request body"}
	errBadTweetID    = &Error{Kind: KindValidation, Message: "Invalid tweet id"}
	errDuplicateUser = &Error{Kind: KindValidation, Message: "User already exists"}
	errWeakPassword  = &Error{Kind: KindValidation, Message: "Password is too short"}
	errEmptyTweet    = &Error{Kind: KindValidation, Message: "Tweet is empty"}
	errLongTweet     = &Error{Kind: KindValidation, Message: "Tweet is too long"}
	errEmptyReply    = &Error{Kind: KindValidation, Message: "Reply is empty"}
	errUnknownUser   = &Error{Kind: KindCredentials, Message: "Invalid user"}
	errBadPassword   = &Error{Kind: KindCredentials, Message: "Invalid password"}
	errBadToken      = &Error{Kind: KindAuthentication, Message: "Invalid JWT Token"}
	errInvalidAccess = &Error{Kind: KindAuthorization, Message: "Invalid Request"}
	errTweetNotFound = &Error{Kind: KindNotFound, Message: "Tweet not found"}
	errNoReplies     = &Error{Kind: KindNotFound, Message: "No replies found"}
	errUserNotFound  = &Error{Kind: KindNotFound, Message: "User not found"}
	errNotFollowing  = &Error{Kind: KindNotFound, Message: "Not following user"}
)
