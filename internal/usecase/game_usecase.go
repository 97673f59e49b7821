package usecase

import (
	"context"

	"ludoteca-api/internal/converter"
	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
	"ludoteca-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GameUsecase interface {
	GetAll(ctx context.Context, title string) (*dto.GameListResponse, error)
	Create(ctx context.Context, req *dto.CreateGameRequest) (*dto.GameResponse, error)
	Update(ctx context.Context, gameID int64, req *dto.UpdateGameRequest) (*dto.GameResponse, error)
	Delete(ctx context.Context, gameID int64) error
}

type gameUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	gameRepo repository.GameRepository
}

func NewGameUsecase(db *gorm.DB, log *logrus.Logger, gameRepo repository.GameRepository) GameUsecase {
	return &gameUsecase{
		db:       db,
		log:      log,
		gameRepo: gameRepo,
	}
}

func (u *gameUsecase) GetAll(ctx context.Context, title string) (*dto.GameListResponse, error) {
	games, err := u.gameRepo.FindAll(u.db.WithContext(ctx), title)
	if err != nil {
		u.log.Warnf("Failed to list games: %+v", err)
		return nil, err
	}

	return &dto.GameListResponse{
		Games: converter.GamesToResponses(games),
		Total: len(games),
	}, nil
}

func (u *gameUsecase) Create(ctx context.Context, req *dto.CreateGameRequest) (*dto.GameResponse, error) {
	game := &entity.Game{
		Title:    req.Title,
		Age:      req.Age,
		Category: req.Category,
	}

	if err := u.gameRepo.Create(u.db.WithContext(ctx), game); err != nil {
		u.log.Warnf("Failed to create game: %+v", err)
		return nil, err
	}

	return converter.GameToResponse(game), nil
}

func (u *gameUsecase) Update(ctx context.Context, gameID int64, req *dto.UpdateGameRequest) (*dto.GameResponse, error) {
	game, err := u.gameRepo.FindByID(u.db.WithContext(ctx), gameID)
	if err != nil {
		u.log.Warnf("Failed to find game %d: %+v", gameID, err)
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	game.Title = req.Title
	game.Age = req.Age
	game.Category = req.Category

	if err := u.gameRepo.Update(u.db.WithContext(ctx), game); err != nil {
		u.log.Warnf("Failed to update game %d: %+v", gameID, err)
		return nil, err
	}

	return converter.GameToResponse(game), nil
}

func (u *gameUsecase) Delete(ctx context.Context, gameID int64) error {
	affected, err := u.gameRepo.Delete(u.db.WithContext(ctx), gameID)
	if err != nil {
		u.log.Warnf("Failed to delete game %d: %+v", gameID, err)
		return err
	}
	if affected == 0 {
		return ErrGameNotFound
	}
	return nil
}
