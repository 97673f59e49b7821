package handler

import (
	"encoding/json"
	"net/http"

	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/service"
	"ludoteca-api/internal/usecase"
	"ludoteca-api/pkg/response"
	"ludoteca-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LoanHandler struct {
	loanUsecase usecase.LoanUsecase
	validator   *validator.CustomValidator
}

func NewLoanHandler(loanUsecase usecase.LoanUsecase, validator *validator.CustomValidator) *LoanHandler {
	return &LoanHandler{
		loanUsecase: loanUsecase,
		validator:   validator,
	}
}

// Search returns a page of loans matching the posted filter.
func (h *LoanHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	page, err := h.loanUsecase.Search(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidLoanDate:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to search loans")
		}
		return
	}

	response.Success(w, http.StatusOK, "Loans retrieved successfully", page)
}

func (h *LoanHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get loans")
		return
	}

	response.Success(w, http.StatusOK, "Loans retrieved successfully", loans)
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	loan, err := h.loanUsecase.Save(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidLoanDate, usecase.ErrEndBeforeStart, usecase.ErrLoanTooLong:
			response.BadRequest(w, err.Error())
		case usecase.ErrGameNotFound:
			response.NotFound(w, "Game not found")
		case usecase.ErrClientNotFound:
			response.NotFound(w, "Client not found")
		case usecase.ErrGameAlreadyReserved, usecase.ErrClientLoanLimit:
			response.Conflict(w, err.Error())
		case service.ErrLockNotAcquired:
			response.ServiceUnavailable(w, "Reservation is busy, try again")
		default:
			response.InternalServerError(w, "Failed to create loan")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Loan created successfully", loan)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	loanID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid loan ID")
		return
	}

	err = h.loanUsecase.Delete(r.Context(), loanID)
	if err != nil {
		switch err {
		case usecase.ErrLoanNotFound:
			response.NotFound(w, "Loan not found")
		default:
			response.InternalServerError(w, "Failed to delete loan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Loan deleted successfully", nil)
}
