package usecase

import (
	"context"
	"errors"
	"time"

	"ludoteca-api/internal/converter"
	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
	"ludoteca-api/internal/domain/repository"
	"ludoteca-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrInvalidLoanDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrEndBeforeStart      = errors.New("return date cannot precede start date")
	ErrLoanTooLong         = errors.New("loan period cannot exceed fourteen days")
	ErrGameAlreadyReserved = errors.New("game already reserved for this day")
	ErrClientLoanLimit     = errors.New("client already has two games reserved for that day")
)

const (
	// Longest allowed span in days between start and end date.
	// A span of 0 (same-day loan) is valid.
	maxLoanDays = 14

	// Existing loans a client may have covering any single day.
	clientDailyLoanLimit = 2

	dateLayout = "2006-01-02"
)

// ReservationLocker serializes conflicting save calls per reservation key.
type ReservationLocker interface {
	Acquire(ctx context.Context, keys ...string) (func(), error)
}

type LoanUsecase interface {
	Search(ctx context.Context, req *dto.SearchLoanRequest) (*dto.LoanPageResponse, error)
	GetAll(ctx context.Context) (*dto.LoanListResponse, error)
	Save(ctx context.Context, req *dto.CreateLoanRequest) (*dto.LoanResponse, error)
	Delete(ctx context.Context, loanID uuid.UUID) error
}

type loanUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	loanRepo   repository.LoanRepository
	gameRepo   repository.GameRepository
	clientRepo repository.ClientRepository
	locker     ReservationLocker
}

func NewLoanUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	loanRepo repository.LoanRepository,
	gameRepo repository.GameRepository,
	clientRepo repository.ClientRepository,
	locker ReservationLocker,
) LoanUsecase {
	return &loanUsecase{
		db:         db,
		log:        log,
		loanRepo:   loanRepo,
		gameRepo:   gameRepo,
		clientRepo: clientRepo,
		locker:     locker,
	}
}

// Search returns one page of loans matching the request filters.
func (u *loanUsecase) Search(ctx context.Context, req *dto.SearchLoanRequest) (*dto.LoanPageResponse, error) {
	filter := &entity.LoanFilter{
		GameID:   req.IDGame,
		ClientID: req.IDClient,
		Page:     req.Pageable.PageNumber,
		Size:     req.Pageable.PageSize,
	}

	if req.Date != "" {
		date, err := parseDay(req.Date)
		if err != nil {
			return nil, ErrInvalidLoanDate
		}
		filter.Date = &date
	}

	loans, total, err := u.loanRepo.FindPage(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search loans: %+v", err)
		return nil, err
	}

	return &dto.LoanPageResponse{
		Content:       converter.LoansToResponses(loans),
		TotalElements: total,
	}, nil
}

func (u *loanUsecase) GetAll(ctx context.Context) (*dto.LoanListResponse, error) {
	loans, err := u.loanRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list loans: %+v", err)
		return nil, err
	}

	return &dto.LoanListResponse{
		Loans: converter.LoansToResponses(loans),
		Total: len(loans),
	}, nil
}

// Save creates a new loan after the reservation checks pass.
//
// Flow:
// 1. Validate the date range (fail fast, no queries)
// 2. Verify the referenced game and client exist
// 3. Acquire the per-game and per-client reservation locks
// 4. Inside one transaction: day-by-day conflict scan, then insert
//
// The locks serialize the read-check-write sequence per conflicting key, so
// two concurrent saves for the same game or client cannot both pass the scan
// against a stale read. The transaction guarantees no partial write remains
// when any step fails.
func (u *loanUsecase) Save(ctx context.Context, req *dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	startDate, err := parseDay(req.StartDate)
	if err != nil {
		return nil, ErrInvalidLoanDate
	}
	endDate, err := parseDay(req.EndDate)
	if err != nil {
		return nil, ErrInvalidLoanDate
	}

	if err := validateLoanPeriod(startDate, endDate); err != nil {
		return nil, err
	}

	game, err := u.gameRepo.FindByID(u.db.WithContext(ctx), req.Game.ID)
	if err != nil {
		u.log.Warnf("Failed to find game %d: %+v", req.Game.ID, err)
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	client, err := u.clientRepo.FindByID(u.db.WithContext(ctx), req.Client.ID)
	if err != nil {
		u.log.Warnf("Failed to find client %d: %+v", req.Client.ID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	release, err := u.locker.Acquire(ctx, service.GameKey(game.ID), service.ClientKey(client.ID))
	if err != nil {
		u.log.Warnf("Failed to lock reservation for game %d, client %d: %+v", game.ID, client.ID, err)
		return nil, err
	}
	defer release()

	loan := &entity.Loan{
		GameID:    game.ID,
		ClientID:  client.ID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.checkAvailability(tx, loan); err != nil {
			return err
		}
		return u.loanRepo.Create(tx, loan)
	})
	if err != nil {
		return nil, err
	}

	// Reload with game and client info for the response
	saved, err := u.loanRepo.FindByID(u.db.WithContext(ctx), loan.ID)
	if err != nil || saved == nil {
		u.log.Warnf("Failed to reload loan %s: %+v", loan.ID, err)
		return converter.LoanToResponse(loan), nil
	}

	u.log.Infof("Loan created: id=%s, game=%d, client=%d, from=%s, to=%s",
		loan.ID, game.ID, client.ID, req.StartDate, req.EndDate)
	return converter.LoanToResponse(saved), nil
}

// Delete removes a loan. A missing id comes back as ErrLoanNotFound, read
// off the delete's affected rows so no separate existence query is needed.
func (u *loanUsecase) Delete(ctx context.Context, loanID uuid.UUID) error {
	affected, err := u.loanRepo.Delete(u.db.WithContext(ctx), loanID)
	if err != nil {
		u.log.Warnf("Failed to delete loan %s: %+v", loanID, err)
		return err
	}
	if affected == 0 {
		return ErrLoanNotFound
	}

	u.log.Infof("Loan deleted: id=%s", loanID)
	return nil
}

// checkAvailability runs the day-by-day conflict scan over the loan's
// inclusive range. Both rules are per-day constraints, so each calendar day
// is checked on its own: one existing loan covering a day blocks the game,
// two existing loans covering a day cap the client. The scan aborts on the
// first violating day.
func (u *loanUsecase) checkAvailability(tx *gorm.DB, loan *entity.Loan) error {
	for day := loan.StartDate; !day.After(loan.EndDate); day = day.AddDate(0, 0, 1) {
		count, err := u.loanRepo.CountByGameOnDate(tx, loan.GameID, day)
		if err != nil {
			u.log.Warnf("Failed to count game %d loans on %s: %+v", loan.GameID, day.Format(dateLayout), err)
			return err
		}
		if count > 0 {
			return ErrGameAlreadyReserved
		}
	}

	for day := loan.StartDate; !day.After(loan.EndDate); day = day.AddDate(0, 0, 1) {
		count, err := u.loanRepo.CountByClientOnDate(tx, loan.ClientID, day)
		if err != nil {
			u.log.Warnf("Failed to count client %d loans on %s: %+v", loan.ClientID, day.Format(dateLayout), err)
			return err
		}
		if count >= clientDailyLoanLimit {
			return ErrClientLoanLimit
		}
	}

	return nil
}

// validateLoanPeriod enforces date-range sanity before any conflict check.
func validateLoanPeriod(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return ErrEndBeforeStart
	}
	if daysBetween(startDate, endDate) > maxLoanDays {
		return ErrLoanTooLong
	}
	return nil
}

func daysBetween(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours() / 24)
}

// parseDay parses a YYYY-MM-DD string into a UTC midnight time, so every
// stored and compared date sits on the same day boundary.
func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}
