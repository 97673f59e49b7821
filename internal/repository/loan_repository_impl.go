package repository

import (
	"errors"
	"time"

	"ludoteca-api/internal/domain/entity"
	domainRepo "ludoteca-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type loanRepository struct{}

func NewLoanRepository() domainRepo.LoanRepository {
	return &loanRepository{}
}

func (r *loanRepository) Create(db *gorm.DB, loan *entity.Loan) error {
	return db.Create(loan).Error
}

func (r *loanRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Loan, error) {
	var loan entity.Loan
	err := db.Preload("Game").Preload("Client").Where("id = ?", id).First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindAll(db *gorm.DB) ([]entity.Loan, error) {
	var loans []entity.Loan
	err := db.Preload("Game").Preload("Client").
		Order("created_at DESC, id").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// FindPage returns loans matching all non-nil filter fields plus the total
// match count. The date filter is a range-containment test against the
// loan's inclusive [start_date, end_date]. Ordering is fixed so pages stay
// stable across calls with the same filter.
func (r *loanRepository) FindPage(db *gorm.DB, filter *entity.LoanFilter) ([]entity.Loan, int64, error) {
	var loans []entity.Loan
	var total int64

	applyFilter := func(query *gorm.DB) *gorm.DB {
		if filter.GameID != nil {
			query = query.Where("game_id = ?", *filter.GameID)
		}
		if filter.ClientID != nil {
			query = query.Where("client_id = ?", *filter.ClientID)
		}
		if filter.Date != nil {
			query = query.Where("start_date <= ? AND end_date >= ?", *filter.Date, *filter.Date)
		}
		return query
	}

	if err := applyFilter(db.Model(&entity.Loan{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyFilter(db.Model(&entity.Loan{})).
		Preload("Game").Preload("Client").
		Order("created_at DESC, id").
		Limit(filter.Size).
		Offset(filter.Page * filter.Size).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func (r *loanRepository) CountByGameOnDate(db *gorm.DB, gameID int64, day time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Loan{}).
		Where("game_id = ? AND start_date <= ? AND end_date >= ?", gameID, day, day).
		Count(&count).Error
	return count, err
}

func (r *loanRepository) CountByClientOnDate(db *gorm.DB, clientID int64, day time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Loan{}).
		Where("client_id = ? AND start_date <= ? AND end_date >= ?", clientID, day, day).
		Count(&count).Error
	return count, err
}

func (r *loanRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Loan{})
	return affected.RowsAffected, affected.Error
}
