// websocket/types.go
package websocket

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// TokenVerifier проверяет учетные данные и возвращает ID пользователя.
// Выпуск токенов — забота внешнего сервиса аутентификации.
type TokenVerifier interface {
	UserIDFromToken(token string) (int, error)
}

// Состояние соединения. Соединение открывается в statePendingAuth и
// переходит в stateAuthenticated либо сразу при открытии (если рукопожатие
// принесло валидный заголовок Authorization), либо после первого сообщения
// с учетными данными. Нулевое значение невалидно: сообщение, пришедшее в
// нем, означает нарушение инварианта и закрывает соединение с серверной
// ошибкой.
type connState int

const (
	statePendingAuth connState = iota + 1
	stateAuthenticated
)

// Client — одно WebSocket-соединение с чат-комнатой
type Client struct {
	// SessionID — непрозрачный идентификатор соединения
	SessionID string

	// RoomID — комната, к которой адресовано соединение
	RoomID int

	Socket *websocket.Conn
	Send   chan []byte

	// state и userID читаются и пишутся только горутиной readPump
	// (до запуска насосов — обработчиком соединения)
	state  connState
	userID int

	// closeOnce гарантирует однократное закрытие исходящего буфера
	closeOnce sync.Once

	manager    *Manager
	dispatcher *Dispatcher
	verifier   TokenVerifier
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника (для разработки)
	},
}
