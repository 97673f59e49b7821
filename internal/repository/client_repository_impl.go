package repository

import (
	"errors"

	"ludoteca-api/internal/domain/entity"
	domainRepo "ludoteca-api/internal/domain/repository"

	"gorm.io/gorm"
)

type clientRepository struct{}

func NewClientRepository() domainRepo.ClientRepository {
	return &clientRepository{}
}

func (r *clientRepository) Create(db *gorm.DB, client *entity.Client) error {
	return db.Create(client).Error
}

func (r *clientRepository) FindByID(db *gorm.DB, id int64) (*entity.Client, error) {
	var client entity.Client
	err := db.Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByName(db *gorm.DB, name string) (*entity.Client, error) {
	var client entity.Client
	err := db.Where("name = ?", name).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindAll(db *gorm.DB) ([]entity.Client, error) {
	var clients []entity.Client
	err := db.Order("name ASC").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Update(db *gorm.DB, client *entity.Client) error {
	return db.Save(client).Error
}

func (r *clientRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Client{})
	return affected.RowsAffected, affected.Error
}
