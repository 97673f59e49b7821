package usecase

import (
	"context"
	"errors"

	"ludoteca-api/internal/converter"
	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
	"ludoteca-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrClientNameTaken = errors.New("a client with this name already exists")

type ClientUsecase interface {
	GetAll(ctx context.Context) (*dto.ClientListResponse, error)
	Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	Update(ctx context.Context, clientID int64, req *dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, clientID int64) error
}

type clientUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	clientRepo repository.ClientRepository
}

func NewClientUsecase(db *gorm.DB, log *logrus.Logger, clientRepo repository.ClientRepository) ClientUsecase {
	return &clientUsecase{
		db:         db,
		log:        log,
		clientRepo: clientRepo,
	}
}

func (u *clientUsecase) GetAll(ctx context.Context) (*dto.ClientListResponse, error) {
	clients, err := u.clientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list clients: %+v", err)
		return nil, err
	}

	return &dto.ClientListResponse{
		Clients: converter.ClientsToResponses(clients),
		Total:   len(clients),
	}, nil
}

func (u *clientUsecase) Create(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	existing, err := u.clientRepo.FindByName(u.db.WithContext(ctx), req.Name)
	if err != nil {
		u.log.Warnf("Failed to check client name %q: %+v", req.Name, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrClientNameTaken
	}

	client := &entity.Client{Name: req.Name}
	if err := u.clientRepo.Create(u.db.WithContext(ctx), client); err != nil {
		u.log.Warnf("Failed to create client: %+v", err)
		return nil, err
	}

	return converter.ClientToResponse(client), nil
}

func (u *clientUsecase) Update(ctx context.Context, clientID int64, req *dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := u.clientRepo.FindByID(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to find client %d: %+v", clientID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	// The new name may only collide with this client itself.
	existing, err := u.clientRepo.FindByName(u.db.WithContext(ctx), req.Name)
	if err != nil {
		u.log.Warnf("Failed to check client name %q: %+v", req.Name, err)
		return nil, err
	}
	if existing != nil && existing.ID != clientID {
		return nil, ErrClientNameTaken
	}

	client.Name = req.Name
	if err := u.clientRepo.Update(u.db.WithContext(ctx), client); err != nil {
		u.log.Warnf("Failed to update client %d: %+v", clientID, err)
		return nil, err
	}

	return converter.ClientToResponse(client), nil
}

func (u *clientUsecase) Delete(ctx context.Context, clientID int64) error {
	affected, err := u.clientRepo.Delete(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to delete client %d: %+v", clientID, err)
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}
