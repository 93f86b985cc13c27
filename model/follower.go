package model

import "time"

// Follower is a directed edge: FollowerUserID sees the tweets of
// FollowingUserID.
type Follower struct {
	FollowerID      uint      `gorm:"primary_key"`
	FollowerUserID  uint      `gorm:"not null;unique_index:idx_followers_edge"`
	FollowingUserID uint      `gorm:"not null;unique_index:idx_followers_edge;index"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (Follower) ForeignKeys() []ForeignKey {
	return []ForeignKey{
		{column: "follower_user_id", foreign: "users(user_id)", delete: Cascade, update: Cascade},
		{column: "following_user_id", foreign: "users(user_id)", delete: Cascade, update: Cascade},
	}
}
