package models

import (
	"time"
)

// Vote is the per-(user, post) ledger row. The composite primary key is the
// uniqueness constraint the whole vote subsystem leans on: a concurrent
// duplicate insert for the same pair fails at the database, not in Go.
type Vote struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}
