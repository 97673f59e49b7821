package repository

import (
	"ludoteca-api/internal/domain/entity"

	"gorm.io/gorm"
)

type GameRepository interface {
	Create(db *gorm.DB, game *entity.Game) error
	FindByID(db *gorm.DB, id int64) (*entity.Game, error)
	FindAll(db *gorm.DB, title string) ([]entity.Game, error)
	Update(db *gorm.DB, game *entity.Game) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
