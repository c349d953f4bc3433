// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/market_chat/auth"
)

// Текст подтверждения успешной аутентификации первым сообщением
const authConfirmation = "Authentication successful!"

// readPump обрабатывает входящие сообщения соединения.
// Каждое сообщение интерпретируется по текущему состоянию:
// до аутентификации весь payload — предъявление учетных данных,
// после — текст сообщения чата.
func (c *Client) readPump() {
	defer func() {
		// Удаление из таблицы сессий безусловно, была сессия
		// аутентифицирована или нет
		c.manager.Drop(c)
		c.Socket.Close()
		log.Printf("ℹ️ Сессия %s отключена от комнаты %d", c.SessionID, c.RoomID)
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ Ошибка чтения сессии %s: %v", c.SessionID, err)
			}
			break
		}

		switch c.state {
		case statePendingAuth:
			if !c.authenticate(string(payload)) {
				// Неудачная аутентификация закрывает соединение:
				// клиент получает определенный сигнал вместо молчания
				return
			}

		case stateAuthenticated:
			c.handleChatMessage(string(payload))

		default:
			// Сообщение в невалидном состоянии — нарушение инварианта,
			// в корректной работе недостижимо
			log.Printf("❌ Сессия %s в неожиданном состоянии %d", c.SessionID, c.state)
			c.closeWith(websocket.CloseInternalServerErr, "internal state error")
			return
		}
	}
}

// authenticate обрабатывает первое сообщение неаутентифицированной сессии
// как предъявление учетных данных вида "<схема> <токен>"
func (c *Client) authenticate(credential string) bool {
	token, err := auth.BearerToken(credential)
	if err != nil {
		log.Printf("❌ Сессия %s: некорректный формат учетных данных", c.SessionID)
		c.closeWith(websocket.ClosePolicyViolation, "malformed credential")
		return false
	}

	userID, err := c.verifier.UserIDFromToken(token)
	if err != nil {
		log.Printf("❌ Сессия %s: учетные данные не прошли проверку: %v", c.SessionID, err)
		c.closeWith(websocket.ClosePolicyViolation, "authentication failed")
		return false
	}

	c.state = stateAuthenticated
	c.userID = userID
	c.manager.Join(c.RoomID, c, userID)
	c.trySend([]byte(authConfirmation))

	log.Printf("✅ Сессия %s аутентифицирована первым сообщением (комната %d, пользователь %d)",
		c.SessionID, c.RoomID, userID)
	return true
}

// handleChatMessage передает текст сообщения диспетчеру рассылки
func (c *Client) handleChatMessage(content string) {
	if err := c.dispatcher.Deliver(c.RoomID, c, c.userID, content); err != nil {
		log.Printf("❌ Ошибка доставки сообщения пользователя %d в комнату %d: %v", c.userID, c.RoomID, err)

		// Отправителю сообщается, что сообщение не отправлено
		if errData, merr := json.Marshal(map[string]string{
			"error": "не удалось сохранить сообщение",
		}); merr == nil {
			c.trySend(errData)
		}
	}
}

// trySend кладет payload в исходящий буфер, не блокируясь
func (c *Client) trySend(payload []byte) {
	select {
	case c.Send <- payload:
	default:
		log.Printf("⚠️ Буфер сессии %s переполнен, сообщение отброшено", c.SessionID)
	}
}

// closeWith отправляет клиенту управляющий кадр закрытия с кодом и причиной
func (c *Client) closeWith(code int, reason string) {
	deadline := time.Now().Add(writeWait)
	if err := c.Socket.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline); err != nil {
		log.Printf("⚠️ Не удалось отправить кадр закрытия сессии %s: %v", c.SessionID, err)
	}
}
