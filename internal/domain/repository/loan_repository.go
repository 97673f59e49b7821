package repository

import (
	"time"

	"ludoteca-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanRepository interface {
	Create(db *gorm.DB, loan *entity.Loan) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Loan, error)
	FindAll(db *gorm.DB) ([]entity.Loan, error)
	FindPage(db *gorm.DB, filter *entity.LoanFilter) ([]entity.Loan, int64, error)
	CountByGameOnDate(db *gorm.DB, gameID int64, day time.Time) (int64, error)
	CountByClientOnDate(db *gorm.DB, clientID int64, day time.Time) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
