package repository

import (
	"errors"

	"ludoteca-api/internal/domain/entity"
	domainRepo "ludoteca-api/internal/domain/repository"

	"gorm.io/gorm"
)

type gameRepository struct{}

func NewGameRepository() domainRepo.GameRepository {
	return &gameRepository{}
}

func (r *gameRepository) Create(db *gorm.DB, game *entity.Game) error {
	return db.Create(game).Error
}

func (r *gameRepository) FindByID(db *gorm.DB, id int64) (*entity.Game, error) {
	var game entity.Game
	err := db.Where("id = ?", id).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindAll(db *gorm.DB, title string) ([]entity.Game, error) {
	var games []entity.Game
	query := db.Order("title ASC")
	if title != "" {
		// LOWER on both sides keeps the match case-insensitive on Postgres
		// as well as on the sqlite test database.
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+title+"%")
	}
	err := query.Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Update(db *gorm.DB, game *entity.Game) error {
	return db.Save(game).Error
}

func (r *gameRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Game{})
	return affected.RowsAffected, affected.Error
}
