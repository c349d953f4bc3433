// routes/message_handlers.go
package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/LilVoxy/market_chat/chat"
)

// MessagesResponse — ответ API для истории сообщений.
// Формат элементов совпадает с кадрами рассылки в реальном времени.
type MessagesResponse struct {
	Messages []chat.MessageDTO `json:"messages"`
}

// RecentMessages обрабатывает GET /api/chatroom/{chatRoomId}/recent?size=
func (h *Handler) RecentMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	roomID, ok := pathID(w, r, "chatRoomId")
	if !ok {
		return
	}

	if !h.requireParticipant(w, userID, roomID) {
		return
	}

	messages, err := h.history.Recent(roomID, sizeParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []chat.MessageDTO{}
	}

	writeJSON(w, http.StatusOK, MessagesResponse{Messages: messages})
	log.Printf("✅ Отправлено %d последних сообщений комнаты %d", len(messages), roomID)
}

// MessagesBefore обрабатывает GET /api/chatroom/{chatRoomId}/before/{messageId}?size=
func (h *Handler) MessagesBefore(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	roomID, ok := pathID(w, r, "chatRoomId")
	if !ok {
		return
	}

	cursor, ok := pathID(w, r, "messageId")
	if !ok {
		return
	}

	if !h.requireParticipant(w, userID, roomID) {
		return
	}

	messages, err := h.history.Before(roomID, cursor, sizeParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []chat.MessageDTO{}
	}

	writeJSON(w, http.StatusOK, MessagesResponse{Messages: messages})
	log.Printf("✅ Отправлено %d сообщений комнаты %d до курсора %d", len(messages), roomID, cursor)
}

// requireParticipant отклоняет запрос, если пользователь не участник комнаты
func (h *Handler) requireParticipant(w http.ResponseWriter, userID, roomID int) bool {
	isParticipant, err := h.rooms.IsParticipant(userID, roomID)
	if err != nil {
		writeError(w, err)
		return false
	}
	if !isParticipant {
		http.Error(w, "Доступ запрещен", http.StatusForbidden)
		return false
	}
	return true
}

// sizeParam читает параметр size; по умолчанию действует размер страницы сервиса
func sizeParam(r *http.Request) int {
	sizeStr := r.URL.Query().Get("size")
	if sizeStr == "" {
		return 0
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 0 {
		return 0
	}
	return size
}
