package api

import (
	"context"
	"sort"
	"sync"

	"github.com/pantonshire/tweetbox/model"
)

// memStore is an in-memory Store for handler tests. The err fields force a
// failure from the matching method.
type memStore struct {
	mu        sync.Mutex
	users     []model.User
	followers []model.Follower
	tweets    []model.Tweet
	likes     []model.Like
	replies   []model.Reply

	pingErr   error
	feedErr   error
	detailErr error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *memStore) userByID(id uint) (model.User, bool) {
	for _, u := range s.users {
		if u.UserID == id {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *memStore) userByName(username string) (model.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *memStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userByName(user.Username); ok {
		return model.User{}, model.ErrDuplicate
	}
	user.UserID = uint(len(s.users) + 1)
	s.users = append(s.users, user)
	return user, nil
}

func (s *memStore) UserByUsername(ctx context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.userByName(username); ok {
		return u, nil
	}
	return model.User{}, model.ErrNotFound
}

func (s *memStore) follows(followerID, followingID uint) bool {
	for _, f := range s.followers {
		if f.FollowerUserID == followerID && f.FollowingUserID == followingID {
			return true
		}
	}
	return false
}

func (s *memStore) Feed(ctx context.Context, userID uint, limit int) ([]model.FeedTweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedErr != nil {
		return nil, s.feedErr
	}
	var tweets []model.Tweet
	for _, t := range s.tweets {
		if s.follows(userID, t.UserID) {
			tweets = append(tweets, t)
		}
	}
	sort.Slice(tweets, func(i, j int) bool {
		if tweets[i].DateTime.Equal(tweets[j].DateTime) {
			return tweets[i].TweetID > tweets[j].TweetID
		}
		return tweets[i].DateTime.After(tweets[j].DateTime)
	})
	feed := make([]model.FeedTweet, 0, limit)
	for _, t := range tweets {
		if len(feed) == limit {
			break
		}
		author, _ := s.userByID(t.UserID)
		feed = append(feed, model.FeedTweet{Username: author.Username, Tweet: t.Text, DateTime: t.DateTime})
	}
	return feed, nil
}

func (s *memStore) FollowingNames(ctx context.Context, userID uint) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0)
	for _, f := range s.followers {
		if f.FollowerUserID == userID {
			u, _ := s.userByID(f.FollowingUserID)
			names = append(names, u.Name)
		}
	}
	return names, nil
}

func (s *memStore) FollowerNames(ctx context.Context, userID uint) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0)
	for _, f := range s.followers {
		if f.FollowingUserID == userID {
			u, _ := s.userByID(f.FollowerUserID)
			names = append(names, u.Name)
		}
	}
	return names, nil
}

func (s *memStore) Follow(ctx context.Context, followerID uint, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.userByName(username)
	if !ok {
		return model.ErrNotFound
	}
	if !s.follows(followerID, target.UserID) {
		s.followers = append(s.followers, model.Follower{
			FollowerID:      uint(len(s.followers) + 1),
			FollowerUserID:  followerID,
			FollowingUserID: target.UserID,
		})
	}
	return nil
}

func (s *memStore) Unfollow(ctx context.Context, followerID uint, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.userByName(username)
	if !ok {
		return false, model.ErrNotFound
	}
	for i, f := range s.followers {
		if f.FollowerUserID == followerID && f.FollowingUserID == target.UserID {
			s.followers = append(s.followers[:i], s.followers[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) TweetOwner(ctx context.Context, tweetID uint) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tweets {
		if t.TweetID == tweetID {
			return t.UserID, nil
		}
	}
	return 0, model.ErrNotFound
}

func (s *memStore) Follows(ctx context.Context, followerID, followingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follows(followerID, followingID), nil
}

func (s *memStore) TweetDetail(ctx context.Context, tweetID uint) (model.TweetDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailErr != nil {
		return model.TweetDetail{}, s.detailErr
	}
	for _, t := range s.tweets {
		if t.TweetID == tweetID {
			detail := model.TweetDetail{Tweet: t.Text, DateTime: t.DateTime}
			for _, l := range s.likes {
				if l.TweetID == tweetID {
					detail.Likes++
				}
			}
			for _, r := range s.replies {
				if r.TweetID == tweetID {
					detail.Replies++
				}
			}
			return detail, nil
		}
	}
	return model.TweetDetail{}, model.ErrNotFound
}

func (s *memStore) TweetLikers(ctx context.Context, tweetID uint) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	likers := make([]string, 0)
	for _, l := range s.likes {
		if l.TweetID == tweetID {
			u, _ := s.userByID(l.UserID)
			likers = append(likers, u.Username)
		}
	}
	return likers, nil
}

func (s *memStore) TweetReplies(ctx context.Context, tweetID uint) ([]model.ReplyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replies := make([]model.ReplyView, 0)
	for _, r := range s.replies {
		if r.TweetID == tweetID {
			u, _ := s.userByID(r.UserID)
			replies = append(replies, model.ReplyView{Name: u.Name, Reply: r.Text})
		}
	}
	return replies, nil
}

func (s *memStore) UserTweets(ctx context.Context, userID uint) ([]model.TweetSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tweets := make([]model.TweetSummary, 0)
	for _, t := range s.tweets {
		if t.UserID != userID {
			continue
		}
		summary := model.TweetSummary{TweetID: t.TweetID, Tweet: t.Text, DateTime: t.DateTime}
		for _, l := range s.likes {
			if l.TweetID == t.TweetID {
				summary.Likes++
			}
		}
		for _, r := range s.replies {
			if r.TweetID == t.TweetID {
				summary.Replies++
			}
		}
		tweets = append(tweets, summary)
	}
	return tweets, nil
}

func (s *memStore) CreateTweet(ctx context.Context, tweet model.Tweet) (model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tweet.TweetID = uint(len(s.tweets) + 100)
	s.tweets = append(s.tweets, tweet)
	return tweet, nil
}

func (s *memStore) DeleteTweet(ctx context.Context, userID, tweetID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tweets {
		if t.TweetID == tweetID && t.UserID == userID {
			s.tweets = append(s.tweets[:i], s.tweets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) LikeTweet(ctx context.Context, userID, tweetID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.TweetID == tweetID && l.UserID == userID {
			return nil
		}
	}
	s.likes = append(s.likes, model.Like{LikeID: uint(len(s.likes) + 1), TweetID: tweetID, UserID: userID})
	return nil
}

func (s *memStore) CreateReply(ctx context.Context, reply model.Reply) (model.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply.ReplyID = uint(len(s.replies) + 1)
	s.replies = append(s.replies, reply)
	return reply, nil
}
