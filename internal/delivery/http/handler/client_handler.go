package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ludoteca-api/internal/delivery/dto"
	"ludoteca-api/internal/usecase"
	"ludoteca-api/pkg/response"
	"ludoteca-api/pkg/validator"

	"github.com/gorilla/mux"
)

type ClientHandler struct {
	clientUsecase usecase.ClientUsecase
	validator     *validator.CustomValidator
}

func NewClientHandler(clientUsecase usecase.ClientUsecase, validator *validator.CustomValidator) *ClientHandler {
	return &ClientHandler{
		clientUsecase: clientUsecase,
		validator:     validator,
	}
}

func (h *ClientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clients")
		return
	}

	response.Success(w, http.StatusOK, "Clients retrieved successfully", clients)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	client, err := h.clientUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrClientNameTaken:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create client")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Client created successfully", client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid client ID")
		return
	}

	var req dto.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	client, err := h.clientUsecase.Update(r.Context(), clientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClientNotFound:
			response.NotFound(w, "Client not found")
		case usecase.ErrClientNameTaken:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update client")
		}
		return
	}

	response.Success(w, http.StatusOK, "Client updated successfully", client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid client ID")
		return
	}

	err = h.clientUsecase.Delete(r.Context(), clientID)
	if err != nil {
		switch err {
		case usecase.ErrClientNotFound:
			response.NotFound(w, "Client not found")
		default:
			response.InternalServerError(w, "Failed to delete client")
		}
		return
	}

	response.Success(w, http.StatusOK, "Client deleted successfully", nil)
}
