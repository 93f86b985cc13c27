package model

import "time"

type Reply struct {
	ReplyID  uint      `gorm:"primary_key"`
	TweetID  uint      `gorm:"not null;index"`
	UserID   uint      `gorm:"not null"`
	Text     string    `gorm:"column:reply;type:text;not null"`
	DateTime time.Time `gorm:"not null"`
}

func (Reply) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{column: "tweet_id", delete: Cascade, update: Cascade},
		{column: "user_id", delete: Cascade, update: Cascade},
	}
}
