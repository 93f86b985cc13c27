package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/pantonshire/tweetbox/model"
)

// Store implements the credential, social graph and content queries on top
// of gorm. Every method runs in its own transaction bound to ctx.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var nowUTC = func() time.Time {
	return time.Now().UTC()
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// Ping checks the underlying connection pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.DB().PingContext(ctx)
}

// CreateUser inserts user unless the username is taken. The existence check
// and the insert share a transaction; the unique index on username settles
// any remaining race.
func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var n int
		if err := tx.Model(&model.User{}).Where("username = ?", user.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return model.ErrDuplicate
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return model.User{}, translate(err)
	}
	return user, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return model.User{}, translate(err)
	}
	return user, nil
}

const feedQuery = `
SELECT u.username, t.tweet, t.date_time
FROM followers AS f
INNER JOIN tweets AS t ON t.user_id = f.following_user_id
INNER JOIN users AS u ON u.user_id = t.user_id
WHERE f.follower_user_id = ?
ORDER BY t.date_time DESC, t.tweet_id DESC
LIMIT ?`

// Feed returns the newest tweets written by users that userID follows.
func (s *Store) Feed(ctx context.Context, userID uint, limit int) ([]model.FeedTweet, error) {
	feed := make([]model.FeedTweet, 0, limit)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		rows, err := tx.Raw(feedQuery, userID, limit).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var item model.FeedTweet
			if err := rows.Scan(&item.Username, &item.Tweet, &item.DateTime); err != nil {
				return err
			}
			feed = append(feed, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("feed for user %d: %w", userID, err)
	}
	return feed, nil
}

const followingQuery = `
SELECT u.name
FROM followers AS f
INNER JOIN users AS u ON u.user_id = f.following_user_id
WHERE f.follower_user_id = ?
ORDER BY f.follower_id`

const followersQuery = `
SELECT u.name
FROM followers AS f
INNER JOIN users AS u ON u.user_id = f.follower_user_id
WHERE f.following_user_id = ?
ORDER BY f.follower_id`

// FollowingNames returns the display names of the users userID follows.
func (s *Store) FollowingNames(ctx context.Context, userID uint) ([]string, error) {
	return s.selectStrings(ctx, followingQuery, userID)
}

// FollowerNames returns the display names of the users following userID.
func (s *Store) FollowerNames(ctx context.Context, userID uint) ([]string, error) {
	return s.selectStrings(ctx, followersQuery, userID)
}

func (s *Store) selectStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	values := make([]string, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		rows, err := tx.Raw(query, args...).Rows()
		if err != nil {
			return err
		}
		values, err = scanStrings(rows, values)
		return err
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

func scanStrings(rows *sql.Rows, values []string) ([]string, error) {
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// TweetOwner resolves the user id owning tweetID.
func (s *Store) TweetOwner(ctx context.Context, tweetID uint) (uint, error) {
	var tweet model.Tweet
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Select("tweet_id, user_id").Where("tweet_id = ?", tweetID).First(&tweet).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return tweet.UserID, nil
}

// Follows reports whether the edge followerID -> followingID exists.
func (s *Store) Follows(ctx context.Context, followerID, followingID uint) (bool, error) {
	var n int
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Model(&model.Follower{}).
			Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
			Count(&n).Error
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const tweetDetailQuery = `
SELECT t.tweet,
       (SELECT COUNT(*) FROM likes AS l WHERE l.tweet_id = t.tweet_id) AS likes,
       (SELECT COUNT(*) FROM replies AS r WHERE r.tweet_id = t.tweet_id) AS replies,
       t.date_time
FROM tweets AS t
WHERE t.tweet_id = ?`

func (s *Store) TweetDetail(ctx context.Context, tweetID uint) (model.TweetDetail, error) {
	var detail model.TweetDetail
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		row := tx.Raw(tweetDetailQuery, tweetID).Row()
		return row.Scan(&detail.Tweet, &detail.Likes, &detail.Replies, &detail.DateTime)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.TweetDetail{}, model.ErrNotFound
	}
	if err != nil {
		return model.TweetDetail{}, err
	}
	return detail, nil
}

const tweetLikersQuery = `
SELECT u.username
FROM likes AS l
INNER JOIN users AS u ON u.user_id = l.user_id
WHERE l.tweet_id = ?
ORDER BY l.like_id`

// TweetLikers returns the usernames of everyone who liked tweetID.
func (s *Store) TweetLikers(ctx context.Context, tweetID uint) ([]string, error) {
	return s.selectStrings(ctx, tweetLikersQuery, tweetID)
}

const tweetRepliesQuery = `
SELECT u.name, r.reply
FROM replies AS r
INNER JOIN users AS u ON u.user_id = r.user_id
WHERE r.tweet_id = ?
ORDER BY r.reply_id`

func (s *Store) TweetReplies(ctx context.Context, tweetID uint) ([]model.ReplyView, error) {
	replies := make([]model.ReplyView, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		rows, err := tx.Raw(tweetRepliesQuery, tweetID).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var reply model.ReplyView
			if err := rows.Scan(&reply.Name, &reply.Reply); err != nil {
				return err
			}
			replies = append(replies, reply)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// Likes and replies are counted distinctly: joining both tables at once
// would otherwise multiply one count by the other.
const userTweetsQuery = `
SELECT t.tweet_id, t.tweet,
       COUNT(DISTINCT l.like_id) AS likes,
       COUNT(DISTINCT r.reply_id) AS replies,
       t.date_time
FROM tweets AS t
LEFT JOIN likes AS l ON l.tweet_id = t.tweet_id
LEFT JOIN replies AS r ON r.tweet_id = t.tweet_id
WHERE t.user_id = ?
GROUP BY t.tweet_id, t.tweet, t.date_time
ORDER BY t.date_time DESC, t.tweet_id DESC`

// UserTweets lists the tweets owned by userID with their engagement counts.
func (s *Store) UserTweets(ctx context.Context, userID uint) ([]model.TweetSummary, error) {
	tweets := make([]model.TweetSummary, 0)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		rows, err := tx.Raw(userTweetsQuery, userID).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var t model.TweetSummary
			if err := rows.Scan(&t.TweetID, &t.Tweet, &t.Likes, &t.Replies, &t.DateTime); err != nil {
				return err
			}
			tweets = append(tweets, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

func (s *Store) CreateTweet(ctx context.Context, tweet model.Tweet) (model.Tweet, error) {
	if tweet.UserID == 0 {
		return model.Tweet{}, fmt.Errorf("tweet has no owner")
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&tweet).Error
	})
	if err != nil {
		return model.Tweet{}, translate(err)
	}
	return tweet, nil
}

// DeleteTweet removes tweetID if, and only if, it is owned by userID. The
// ownership check is the delete's own condition, so there is no window
// between checking and acting. Likes and replies of the tweet go with it.
func (s *Store) DeleteTweet(ctx context.Context, userID, tweetID uint) (bool, error) {
	var deleted bool
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		res := tx.Where("tweet_id = ? AND user_id = ?", tweetID, userID).Delete(&model.Tweet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("tweet_id = ?", tweetID).Delete(&model.Reply{}).Error
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// Follow adds the edge followerID -> username. Following twice is a no-op.
func (s *Store) Follow(ctx context.Context, followerID uint, username string) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var target model.User
		if err := tx.Select("user_id").Where("username = ?", username).First(&target).Error; err != nil {
			return err
		}
		edge := model.Follower{
			FollowerUserID:  followerID,
			FollowingUserID: target.UserID,
			CreatedAt:       nowUTC(),
		}
		var n int
		q := tx.Model(&model.Follower{}).
			Where("follower_user_id = ? AND following_user_id = ?", edge.FollowerUserID, edge.FollowingUserID)
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return tx.Create(&edge).Error
	})
	if err = translate(err); errors.Is(err, model.ErrDuplicate) {
		return nil
	}
	return err
}

// Unfollow removes the edge followerID -> username, reporting whether it
// existed.
func (s *Store) Unfollow(ctx context.Context, followerID uint, username string) (bool, error) {
	var removed bool
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var target model.User
		if err := tx.Select("user_id").Where("username = ?", username).First(&target).Error; err != nil {
			return err
		}
		res := tx.Where("follower_user_id = ? AND following_user_id = ?", followerID, target.UserID).
			Delete(&model.Follower{})
		removed = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, translate(err)
	}
	return removed, nil
}

// LikeTweet records that userID likes tweetID. Liking twice is a no-op.
func (s *Store) LikeTweet(ctx context.Context, userID, tweetID uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var n int
		if err := tx.Model(&model.Like{}).Where("tweet_id = ? AND user_id = ?", tweetID, userID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return tx.Create(&model.Like{TweetID: tweetID, UserID: userID, DateTime: nowUTC()}).Error
	})
	if err = translate(err); errors.Is(err, model.ErrDuplicate) {
		return nil
	}
	return err
}

func (s *Store) CreateReply(ctx context.Context, reply model.Reply) (model.Reply, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&reply).Error
	})
	if err != nil {
		return model.Reply{}, translate(err)
	}
	return reply, nil
}
