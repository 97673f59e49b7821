package converter

import (
	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// LoanToResponse converts a Loan entity to a LoanResponse DTO
func LoanToResponse(loan *entity.Loan) *dto.LoanResponse {
	if loan == nil {
		return nil
	}

	response := &dto.LoanResponse{
		ID:        loan.ID,
		StartDate: loan.StartDate.Format(dateLayout),
		EndDate:   loan.EndDate.Format(dateLayout),
	}

	// Include game and client info if preloaded
	if loan.Game.ID != 0 {
		response.Game = GameToResponse(&loan.Game)
	}
	if loan.Client.ID != 0 {
		response.Client = ClientToResponse(&loan.Client)
	}

	return response
}

// LoansToResponses converts a slice of Loan entities to LoanResponse DTOs
func LoansToResponses(loans []entity.Loan) []dto.LoanResponse {
	responses := make([]dto.LoanResponse, len(loans))
	for i, loan := range loans {
		resp := LoanToResponse(&loan)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
