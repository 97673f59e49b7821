package repository

import (
	"ludoteca-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(db *gorm.DB, client *entity.Client) error
	FindByID(db *gorm.DB, id int64) (*entity.Client, error)
	FindByName(db *gorm.DB, name string) (*entity.Client, error)
	FindAll(db *gorm.DB) ([]entity.Client, error)
	Update(db *gorm.DB, client *entity.Client) error
	Delete(db *gorm.DB, id int64) (int64, error)
}
