package converter

import (
	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
)

func GameToResponse(game *entity.Game) *dto.GameResponse {
	if game == nil {
		return nil
	}
	return &dto.GameResponse{
		ID:       game.ID,
		Title:    game.Title,
		Age:      game.Age,
		Category: game.Category,
	}
}

func GamesToResponses(games []entity.Game) []dto.GameResponse {
	responses := make([]dto.GameResponse, len(games))
	for i, game := range games {
		responses[i] = *GameToResponse(&game)
	}
	return responses
}
