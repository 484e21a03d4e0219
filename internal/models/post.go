package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	Creator   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator"`
	Title     string    `gorm:"not null" json:"title"`
	Text      string    `gorm:"type:text" json:"text"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
