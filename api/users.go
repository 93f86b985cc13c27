package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/pantonshire/tweetbox/auth"
	"github.com/pantonshire/tweetbox/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWTToken string `json:"jwtToken"`
}

type nameResponse struct {
	Name string `json:"name"`
}

func caller(request *http.Request) auth.Identity {
	identity, _ := auth.FromContext(request.Context())
	return identity
}

// POST /register
func (api *API) register(writer http.ResponseWriter, request *http.Request) {
	var req registerRequest
	if err := decodeBody(writer, request, &req); err != nil {
		api.fail(writer, request, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		api.fail(writer, request, errBadBody)
		return
	}

	// The duplicate check comes before the password check.
	_, err := api.store.UserByUsername(request.Context(), req.Username)
	if err == nil {
		api.fail(writer, request, errDuplicateUser)
		return
	}
	if !errors.Is(err, model.ErrNotFound) {
		api.fail(writer, request, err)
		return
	}
	if len(req.Password) < minPasswordLength {
		api.fail(writer, request, errWeakPassword)
		return
	}

	hash, err := api.hasher.Hash(req.Password)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	_, err = api.store.CreateUser(request.Context(), model.User{
		Username:  req.Username,
		Password:  hash,
		Name:      req.Name,
		Gender:    req.Gender,
		CreatedAt: api.now(),
	})
	if errors.Is(err, model.ErrDuplicate) {
		api.fail(writer, request, errDuplicateUser)
		return
	}
	if err != nil {
		api.fail(writer, request, err)
		return
	}

	textResponse(writer, http.StatusOK, "User created successfully")
}

// POST /login
func (api *API) login(writer http.ResponseWriter, request *http.Request) {
	var req loginRequest
	if err := decodeBody(writer, request, &req); err != nil {
		api.fail(writer, request, err)
		return
	}

	user, err := api.store.UserByUsername(request.Context(), req.Username)
	if errors.Is(err, model.ErrNotFound) {
		api.fail(writer, request, errUnknownUser)
		return
	}
	if err != nil {
		api.fail(writer, request, err)
		return
	}

	err = api.hasher.Compare(user.Password, req.Password)
	if errors.Is(err, auth.ErrPasswordMismatch) {
		api.fail(writer, request, errBadPassword)
		return
	}
	if err != nil {
		api.fail(writer, request, err)
		return
	}

	token, err := api.tokens.Issue(auth.Identity{Username: user.Username, UserID: user.UserID})
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	jsonResponse(writer, http.StatusOK, loginResponse{JWTToken: token})
}

// GET /user/tweets/feed
func (api *API) feed(writer http.ResponseWriter, request *http.Request) {
	feed, err := api.store.Feed(request.Context(), caller(request).UserID, api.opts.FeedSize)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	jsonResponse(writer, http.StatusOK, feed)
}

// GET /user/following
func (api *API) following(writer http.ResponseWriter, request *http.Request) {
	names, err := api.store.FollowingNames(request.Context(), caller(request).UserID)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	jsonResponse(writer, http.StatusOK, nameResponses(names))
}

// GET /user/followers
func (api *API) followers(writer http.ResponseWriter, request *http.Request) {
	names, err := api.store.FollowerNames(request.Context(), caller(request).UserID)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	jsonResponse(writer, http.StatusOK, nameResponses(names))
}

func nameResponses(names []string) []nameResponse {
	resp := make([]nameResponse, 0, len(names))
	for _, name := range names {
		resp = append(resp, nameResponse{Name: name})
	}
	return resp
}

// POST /user/following/{username}
func (api *API) follow(writer http.ResponseWriter, request *http.Request) {
	err := api.store.Follow(request.Context(), caller(request).UserID, chi.URLParam(request, "username"))
	if errors.Is(err, model.ErrNotFound) {
		api.fail(writer, request, errUserNotFound)
		return
	}
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	textResponse(writer, http.StatusCreated, "Following user")
}

// DELETE /user/following/{username}
func (api *API) unfollow(writer http.ResponseWriter, request *http.Request) {
	removed, err := api.store.Unfollow(request.Context(), caller(request).UserID, chi.URLParam(request, "username"))
	if errors.Is(err, model.ErrNotFound) {
		api.fail(writer, request, errUserNotFound)
		return
	}
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	if !removed {
		api.fail(writer, request, errNotFollowing)
		return
	}
	textResponse(writer, http.StatusOK, "Unfollowed user")
}
