package converter

import (
	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
)

func ClientToResponse(client *entity.Client) *dto.ClientResponse {
	if client == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:   client.ID,
		Name: client.Name,
	}
}

func ClientsToResponses(clients []entity.Client) []dto.ClientResponse {
	responses := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = *ClientToResponse(&client)
	}
	return responses
}
