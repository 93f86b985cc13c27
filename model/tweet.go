package model

import "time"

type Tweet struct {
	TweetID  uint      `gorm:"primary_key"`
	Text     string    `gorm:"column:tweet;type:text;not null"`
	UserID   uint      `gorm:"not null;index"`
	DateTime time.Time `gorm:"not null;index"`
}

func (Tweet) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{column: "user_id", delete: Cascade, update: Cascade},
	}
}
