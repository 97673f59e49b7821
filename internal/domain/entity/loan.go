package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loan represents one reservation: a client borrowing a game for an
// inclusive date range. Loans are never edited in place; they are created
// after the reservation checks pass and hard-deleted on return.
type Loan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GameID    int64     `gorm:"not null;index" json:"game_id"`
	ClientID  int64     `gorm:"not null;index" json:"client_id"`
	StartDate time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;index" json:"end_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Game   Game   `gorm:"foreignKey:GameID" json:"game,omitempty"`
	Client Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
