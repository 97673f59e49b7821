package http

import (
	"net/http"

	"ludoteca-api/internal/delivery/http/handler"
	"ludoteca-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	loanHandler    *handler.LoanHandler
	gameHandler    *handler.GameHandler
	clientHandler  *handler.ClientHandler
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	loanHandler *handler.LoanHandler,
	gameHandler *handler.GameHandler,
	clientHandler *handler.ClientHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		loanHandler:    loanHandler,
		gameHandler:    gameHandler,
		clientHandler:  clientHandler,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Loan routes. POST is the paginated search, PUT creates.
	api.HandleFunc("/loan", r.loanHandler.Search).Methods(http.MethodPost)
	api.HandleFunc("/loan", r.loanHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/loan", r.loanHandler.Create).Methods(http.MethodPut)
	api.HandleFunc("/loan/{id}", r.loanHandler.Delete).Methods(http.MethodDelete)

	// Game catalog
	api.HandleFunc("/game", r.gameHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/game", r.gameHandler.Create).Methods(http.MethodPut)
	api.HandleFunc("/game/{id}", r.gameHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/game/{id}", r.gameHandler.Delete).Methods(http.MethodDelete)

	// Client catalog
	api.HandleFunc("/client", r.clientHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/client", r.clientHandler.Create).Methods(http.MethodPut)
	api.HandleFunc("/client/{id}", r.clientHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/client/{id}", r.clientHandler.Delete).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
