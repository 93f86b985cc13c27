package api

import (
	"context"

	"github.com/pantonshire/tweetbox/model"
)

// Store is everything the handlers need from persistence. Lookups that
// miss return model.ErrNotFound; inserts that collide with an existing row
// return model.ErrDuplicate.
type Store interface {
	RelationshipStore

	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UserByUsername(ctx context.Context, username string) (model.User, error)

	Feed(ctx context.Context, userID uint, limit int) ([]model.FeedTweet, error)
	FollowingNames(ctx context.Context, userID uint) ([]string, error)
	FollowerNames(ctx context.Context, userID uint) ([]string, error)
	Follow(ctx context.Context, followerID uint, username string) error
	Unfollow(ctx context.Context, followerID uint, username string) (bool, error)

	TweetDetail(ctx context.Context, tweetID uint) (model.TweetDetail, error)
	TweetLikers(ctx context.Context, tweetID uint) ([]string, error)
	TweetReplies(ctx context.Context, tweetID uint) ([]model.ReplyView, error)
	UserTweets(ctx context.Context, userID uint) ([]model.TweetSummary, error)
	CreateTweet(ctx context.Context, tweet model.Tweet) (model.Tweet, error)
	DeleteTweet(ctx context.Context, userID, tweetID uint) (bool, error)
	LikeTweet(ctx context.Context, userID, tweetID uint) error
	CreateReply(ctx context.Context, reply model.Reply) (model.Reply, error)
}
