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

type GameHandler struct {
	gameUsecase usecase.GameUsecase
	validator   *validator.CustomValidator
}

func NewGameHandler(gameUsecase usecase.GameUsecase, validator *validator.CustomValidator) *GameHandler {
	return &GameHandler{
		gameUsecase: gameUsecase,
		validator:   validator,
	}
}

func (h *GameHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")

	games, err := h.gameUsecase.GetAll(r.Context(), title)
	if err != nil {
		response.InternalServerError(w, "Failed to get games")
		return
	}

	response.Success(w, http.StatusOK, "Games retrieved successfully", games)
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	game, err := h.gameUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create game")
		return
	}

	response.Success(w, http.StatusCreated, "Game created successfully", game)
}

func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid game ID")
		return
	}

	var req dto.UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	game, err := h.gameUsecase.Update(r.Context(), gameID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGameNotFound:
			response.NotFound(w, "Game not found")
		default:
			response.InternalServerError(w, "Failed to update game")
		}
		return
	}

	response.Success(w, http.StatusOK, "Game updated successfully", game)
}

func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid game ID")
		return
	}

	err = h.gameUsecase.Delete(r.Context(), gameID)
	if err != nil {
		switch err {
		case usecase.ErrGameNotFound:
			response.NotFound(w, "Game not found")
		default:
			response.InternalServerError(w, "Failed to delete game")
		}
		return
	}

	response.Success(w, http.StatusOK, "Game deleted successfully", nil)
}
