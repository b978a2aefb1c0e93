package server

import (
	"clinic-chat/auth"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires every route. Everything except /health and /debug/stats
// requires a bearer token.
func NewRouter(log *slog.Logger, tokens *auth.Tokens, chatServer *ChatServer,
	websocketServer *WebsocketServer, monitoringServer *MonitoringServer, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", monitoringServer.Health).Methods(http.MethodGet)
	r.HandleFunc("/debug/stats", monitoringServer.Stats).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(tokens.Middleware(ErrorWriter(log)))
	protected.HandleFunc("/ws", websocketServer.Connect).Methods(http.MethodGet)

	chats := protected.PathPrefix("/api/v1/chats").Subrouter()
	chats.HandleFunc("", chatServer.GetRecentConversations).Methods(http.MethodGet)
	chats.HandleFunc("/initiate", chatServer.InitiateChat).Methods(http.MethodPost)
	chats.HandleFunc("/{roomId}", chatServer.GetConversation).Methods(http.MethodGet)
	chats.HandleFunc("/{roomId}/message", chatServer.PostMessage).Methods(http.MethodPost)
	chats.HandleFunc("/{roomId}/mark-read", chatServer.MarkRead).Methods(http.MethodPut)
	chats.HandleFunc("/{roomId}/search", chatServer.Search).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)
}
