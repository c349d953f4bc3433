// routes/api_routes.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/LilVoxy/market_chat/chat"
	"github.com/LilVoxy/market_chat/middleware"
	"github.com/LilVoxy/market_chat/websocket"
)

// TokenVerifier проверяет bearer-токен и возвращает ID пользователя
type TokenVerifier interface {
	UserIDFromToken(token string) (int, error)
}

// Handler объединяет зависимости REST-обработчиков чата
type Handler struct {
	rooms    *chat.RoomService
	history  *chat.HistoryService
	verifier TokenVerifier
}

// NewHandler создает REST-обработчик чата
func NewHandler(rooms *chat.RoomService, history *chat.HistoryService, verifier TokenVerifier) *Handler {
	return &Handler{rooms: rooms, history: history, verifier: verifier}
}

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, h *Handler, wsHandler *websocket.Handler) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// WebSocket соединения с чат-комнатами
	router.HandleFunc("/ws/chat/{chatRoomId}", wsHandler.HandleConnections)

	// API чат-комнат
	router.HandleFunc("/api/posts/{postId}/chatroom", h.CreateChatRoom).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/posts/{postId}/chatroom", h.CheckChatRoom).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/users/me/chatrooms", h.MyChatRooms).Methods("GET", "OPTIONS")

	// API истории сообщений
	router.HandleFunc("/api/chatroom/{chatRoomId}/recent", h.RecentMessages).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/chatroom/{chatRoomId}/before/{messageId}", h.MessagesBefore).Methods("GET", "OPTIONS")
}
