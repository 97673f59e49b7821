package dto

import "github.com/google/uuid"

// Request DTOs

type PageableRequest struct {
	PageNumber int `json:"pageNumber" validate:"min=0"`
	PageSize   int `json:"pageSize" validate:"required,min=1"`
}

// SearchLoanRequest filters the loan page search. All filter fields are
// optional and combined with AND.
type SearchLoanRequest struct {
	IDGame   *int64          `json:"idGame"`
	IDClient *int64          `json:"idClient"`
	Date     string          `json:"date"`
	Pageable PageableRequest `json:"pageable" validate:"required"`
}

type GameRef struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

type ClientRef struct {
	ID int64 `json:"id" validate:"required,min=1"`
}

type CreateLoanRequest struct {
	Game      GameRef   `json:"game" validate:"required"`
	Client    ClientRef `json:"client" validate:"required"`
	StartDate string    `json:"startDate" validate:"required"`
	EndDate   string    `json:"endDate" validate:"required"`
}

// Response DTOs

type LoanResponse struct {
	ID        uuid.UUID       `json:"id"`
	Game      *GameResponse   `json:"game,omitempty"`
	Client    *ClientResponse `json:"client,omitempty"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
}

type LoanPageResponse struct {
	Content       []LoanResponse `json:"content"`
	TotalElements int64          `json:"totalElements"`
}

type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
	Total int            `json:"total"`
}
