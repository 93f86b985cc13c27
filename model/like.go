package model

import "time"

type Like struct {
	LikeID   uint      `gorm:"primary_key"`
	TweetID  uint      `gorm:"not null;unique_index:idx_likes_tweet_user"`
	UserID   uint      `gorm:"not null;unique_index:idx_likes_tweet_user"`
	DateTime time.Time `gorm:"not null"`
}

func (Like) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{column: "tweet_id", delete: Cascade, update: Cascade},
		{column: "user_id", delete: Cascade, update: Cascade},
	}
}
