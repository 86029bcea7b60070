package routes

import (
	"safariconnect_server/controllers"
	"safariconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match-related operations under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()

	matchRouter.HandleFunc("/suggestions", controller.HandleGetSuggestions).Methods("GET")
	matchRouter.HandleFunc("", controller.HandleCreateMatch).Methods("POST")
	matchRouter.HandleFunc("/user/{userId}", controller.HandleListMatches).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/status", controller.HandleUpdateStatus).Methods("PATCH")
	matchRouter.HandleFunc("/{matchId}", controller.HandleDeleteMatch).Methods("DELETE")
}
