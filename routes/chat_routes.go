package routes

import (
	"safariconnect_server/controllers"
	"safariconnect_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/thread", controller.HandleGetOrCreateThread).Methods("POST")
	chatRouter.HandleFunc("/thread/deactivate", controller.HandleDeactivateThread).Methods("POST")
	chatRouter.HandleFunc("/threads", controller.HandleListThreads).Methods("GET")
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages/mark-as-read", controller.HandleMarkRead).Methods("POST")
	chatRouter.HandleFunc("/stats", controller.HandleGetStats).Methods("GET")
	chatRouter.HandleFunc("/attachment-url", controller.HandleAttachmentUploadURL).Methods("GET")
}
