package model

import "time"

type User struct {
	UserID    uint      `gorm:"primary_key"`
	Username  string    `gorm:"type:varchar(64);not null;unique_index"`
	Password  string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	Gender    string    `gorm:"type:varchar(16)"`
	CreatedAt time.Time `gorm:"not null"`
}
