package api

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pantonshire/tweetbox/model"
)

type tweetRequest struct {
	Tweet string `json:"tweet"`
}

type replyRequest struct {
	Reply string `json:"reply"`
}

type likesResponse struct {
	Likes []string `json:"likes"`
}

type repliesResponse struct {
	Replies []model.ReplyView `json:"replies"`
}

// GET /user/tweets
func (api *API) userTweets(writer http.ResponseWriter, request *http.Request) {
	tweets, err := api.store.UserTweets(request.Context(), caller(request).UserID)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	jsonResponse(writer, http.StatusOK, tweets)
}

// POST /user/tweets
func (api *API) createTweet(writer http.ResponseWriter, request *http.Request) {
	var req tweetRequest
	if err := decodeBody(writer, request, &req); err != nil {
		api.fail(writer, request, err)
		return
	}
	if strings.TrimSpace(req.Tweet) == "" {
		api.fail(writer, request, errEmptyTweet)
		return
	}
	if utf8.RuneCountInString(req.Tweet) > api.opts.MaxTweetLength {
		api.fail(writer, request, errLongTweet)
		return
	}

	tweet, err := api.store.CreateTweet(request.Context(), model.Tweet{
		Text:     req.Tweet,
		UserID:   caller(request).UserID,
		DateTime: api.now(),
	})
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	api.log.Debugf("user %d created tweet %d", tweet.UserID, tweet.TweetID)
	textResponse(writer, http.StatusCreated, "Created a Tweet")
}

// DELETE /tweets/{tweetID}
func (api *API) deleteTweet(writer http.ResponseWriter, request *http.Request) {
	tweetID, err := tweetIDParam(request)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	deleted, err := api.store.DeleteTweet(request.Context(), caller(request).UserID, tweetID)
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	if !deleted {
		api.fail(writer, request, errInvalidAccess)
		return
	}
	textResponse(writer, http.StatusOK, "Tweet Removed")
}

// The handlers below run behind requireTweetAccess, which has already
// parsed the tweet id and checked the caller follows its owner.

// GET /tweets/{tweetID}
func (api *API) tweetDetail(writer http.ResponseWriter, request *http.Request) {
	detail, err := api.store.TweetDetail(request.Context(), tweetIDFromContext(request.Context()))
	if errors.Is(err, model.ErrNotFound) {
		api.fail(writer, request, errTweetNotFound)
		return
	}
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	jsonResponse(writer, http.StatusOK, detail)
}

// GET /tweets/{tweetID}/likes
func (api *API) tweetLikes(writer http.ResponseWriter, request *http.Request) {
	likers, err := api.store.TweetLikers(request.Context(), tweetIDFromContext(request.Context()))
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	if likers == nil {
		likers = []string{}
	}
	jsonResponse(writer, http.StatusOK, likesResponse{Likes: likers})
}

// GET /tweets/{tweetID}/replies
//
// A tweet without replies answers 404, unlike the likes listing which
// answers an empty list.
func (api *API) tweetReplies(writer http.ResponseWriter, request *http.Request) {
	replies, err := api.store.TweetReplies(request.Context(), tweetIDFromContext(request.Context()))
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	if len(replies) == 0 {
		api.fail(writer, request, errNoReplies)
		return
	}
	jsonResponse(writer, http.StatusOK, repliesResponse{Replies: replies})
}

// POST /tweets/{tweetID}/likes
func (api *API) likeTweet(writer http.ResponseWriter, request *http.Request) {
	err := api.store.LikeTweet(request.Context(), caller(request).UserID, tweetIDFromContext(request.Context()))
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	textResponse(writer, http.StatusCreated, "Liked a Tweet")
}

// POST /tweets/{tweetID}/replies
func (api *API) replyToTweet(writer http.ResponseWriter, request *http.Request) {
	var req replyRequest
	if err := decodeBody(writer, request, &req); err != nil {
		api.fail(writer, request, err)
		return
	}
	if strings.TrimSpace(req.Reply) == "" {
		api.fail(writer, request, errEmptyReply)
		return
	}
	if utf8.RuneCountInString(req.Reply) > api.opts.MaxTweetLength {
		api.fail(writer, request, errLongTweet)
		return
	}

	_, err := api.store.CreateReply(request.Context(), model.Reply{
		TweetID:  tweetIDFromContext(request.Context()),
		UserID:   caller(request).UserID,
		Text:     req.Reply,
		DateTime: api.now(),
	})
	if err != nil {
		api.fail(writer, request, err)
		return
	}
	textResponse(writer, http.StatusCreated, "Replied to Tweet")
}
