// routes/chat_handlers.go
package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/market_chat/auth"
	"github.com/LilVoxy/market_chat/chat"
)

// ChatRoomsResponse — ответ API для списка чат-комнат
type ChatRoomsResponse struct {
	ChatRooms []chat.ChatRoom `json:"chatRooms"`
}

// ChatRoomCheckResponse — ответ API проверки существования комнаты.
// null означает, что комнаты еще нет и кнопку "продолжить чат" показывать не надо.
type ChatRoomCheckResponse struct {
	ChatRoomID *int `json:"chatRoomId"`
}

// CreateChatRoom обрабатывает POST /api/posts/{postId}/chatroom.
// Покупателем всегда считается владелец токена — ID участников никогда
// не берутся из тела запроса
func (h *Handler) CreateChatRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	room, err := h.rooms.CreateOrGetRoom(postID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, room)
	log.Printf("✅ Чат-комната %d для объявления %d и покупателя %d", room.ID, postID, userID)
}

// CheckChatRoom обрабатывает GET /api/posts/{postId}/chatroom
func (h *Handler) CheckChatRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	roomID, err := h.rooms.FindRoomForUser(postID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := ChatRoomCheckResponse{}
	if roomID != 0 {
		response.ChatRoomID = &roomID
	}
	writeJSON(w, http.StatusOK, response)
}

// MyChatRooms обрабатывает GET /api/users/me/chatrooms
func (h *Handler) MyChatRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	rooms, err := h.rooms.RoomsForUser(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if rooms == nil {
		rooms = []chat.ChatRoom{}
	}

	writeJSON(w, http.StatusOK, ChatRoomsResponse{ChatRooms: rooms})
	log.Printf("✅ Отправлен список из %d чат-комнат для пользователя %d", len(rooms), userID)
}

// callerID достает и проверяет bearer-токен из заголовка Authorization
func (h *Handler) callerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Отсутствует заголовок Authorization", http.StatusUnauthorized)
		return 0, false
	}

	token, err := auth.BearerToken(authHeader)
	if err != nil {
		http.Error(w, "Некорректный формат заголовка Authorization", http.StatusUnauthorized)
		return 0, false
	}

	userID, err := h.verifier.UserIDFromToken(token)
	if err != nil {
		http.Error(w, "Недействительный токен", http.StatusUnauthorized)
		return 0, false
	}

	return userID, true
}

// pathID читает числовой параметр пути
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	idStr := mux.Vars(r)[name]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, "Невалидный ID в пути запроса", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeJSON кодирует ответ в JSON
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Ошибка при кодировании JSON: %v", err)
	}
}

// writeError сопоставляет ошибки чат-ядра со статусами HTTP
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrSelfChat):
		http.Error(w, "Нельзя открыть чат по собственному объявлению", http.StatusForbidden)
	case errors.Is(err, chat.ErrForbidden):
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
	case errors.Is(err, chat.ErrPostNotFound):
		http.Error(w, "Объявление не найдено", http.StatusNotFound)
	case errors.Is(err, chat.ErrRoomNotFound):
		http.Error(w, "Чат-комната не найдена", http.StatusNotFound)
	case errors.Is(err, chat.ErrBadRequest):
		http.Error(w, "Некорректный запрос", http.StatusBadRequest)
	case errors.Is(err, chat.ErrUnauthenticated):
		http.Error(w, "Недействительный токен", http.StatusUnauthorized)
	default:
		log.Printf("❌ Внутренняя ошибка: %v", err)
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
	}
}
