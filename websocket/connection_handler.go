// websocket/connection_handler.go
package websocket

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/LilVoxy/market_chat/auth"
	"github.com/LilVoxy/market_chat/chat"
)

// Handler принимает WebSocket-соединения с чат-комнатами
type Handler struct {
	manager    *Manager
	dispatcher *Dispatcher
	verifier   TokenVerifier
	rooms      *chat.RoomService
}

// NewHandler создает обработчик WebSocket-соединений
func NewHandler(manager *Manager, dispatcher *Dispatcher, verifier TokenVerifier, rooms *chat.RoomService) *Handler {
	return &Handler{
		manager:    manager,
		dispatcher: dispatcher,
		verifier:   verifier,
		rooms:      rooms,
	}
}

// HandleConnections обрабатывает соединения на /ws/chat/{chatRoomId}.
// ID комнаты берется из пути; без валидного ID соединение отклоняется
// еще до рукопожатия. Аутентификация двухфазная: либо заголовок
// Authorization при открытии, либо учетные данные первым сообщением.
func (h *Handler) HandleConnections(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	roomIDStr := params["chatRoomId"]

	roomID, err := strconv.Atoi(roomIDStr)
	if err != nil || roomID <= 0 {
		log.Printf("❌ Невалидный ID комнаты: %q", roomIDStr)
		http.Error(w, "Невалидный ID комнаты", http.StatusBadRequest)
		return
	}

	if _, err := h.rooms.RoomByID(roomID); err != nil {
		if errors.Is(err, chat.ErrRoomNotFound) {
			http.Error(w, "Чат-комната не найдена", http.StatusNotFound)
			return
		}
		log.Printf("❌ Ошибка поиска комнаты %d: %v", roomID, err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		SessionID:  uuid.NewString(),
		RoomID:     roomID,
		Socket:     conn,
		Send:       make(chan []byte, sendBufferSize),
		state:      statePendingAuth,
		manager:    h.manager,
		dispatcher: h.dispatcher,
		verifier:   h.verifier,
	}

	// Быстрый путь: рукопожатие уже принесло учетные данные.
	// Невалидный заголовок не закрывает соединение — остаемся
	// неаутентифицированными и ждем учетные данные первым сообщением.
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if userID, err := h.verifyCredential(authHeader); err == nil {
			client.state = stateAuthenticated
			client.userID = userID
			h.manager.Join(roomID, client, userID)
			log.Printf("✅ Сессия %s аутентифицирована при открытии (комната %d, пользователь %d)",
				client.SessionID, roomID, userID)
		} else {
			log.Printf("⚠️ Заголовок Authorization не прошел проверку, сессия %s ждет учетные данные в сообщении: %v",
				client.SessionID, err)
		}
	} else {
		log.Printf("ℹ️ Сессия %s открыта без учетных данных, комната %d", client.SessionID, roomID)
	}

	// Запускаем горутины для чтения и отправки сообщений
	go client.writePump()
	go client.readPump()
}

// verifyCredential разбирает строку "<схема> <токен>" и проверяет токен
func (h *Handler) verifyCredential(credential string) (int, error) {
	token, err := auth.BearerToken(credential)
	if err != nil {
		return 0, err
	}
	return h.verifier.UserIDFromToken(token)
}
