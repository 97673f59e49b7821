package entity

import "time"

// Game represents a board game in the lending catalog.
type Game struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null;index" json:"title"`
	Age       int       `gorm:"not null" json:"age"`
	Category  string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Game) TableName() string {
	return "games"
}
