// websocket/dispatcher.go
package websocket

import (
	"encoding/json"
	"fmt"
	"log"

	"go.uber.org/atomic"

	"github.com/LilVoxy/market_chat/chat"
)

// Dispatcher доставляет сообщения: сначала надежно сохраняет, потом
// рассылает всем живым сессиям комнаты. Порядок строгий — сохранение
// до рассылки, поэтому история всегда согласована с тем, что было
// (или будет) разослано.
type Dispatcher struct {
	manager  *Manager
	messages chat.MessageStore
	users    chat.UserStore

	// echoToSender — отправлять ли отправителю эхо его собственного сообщения
	echoToSender bool

	persisted *atomic.Int64
	delivered *atomic.Int64
}

// NewDispatcher создает диспетчер рассылки
func NewDispatcher(manager *Manager, messages chat.MessageStore, users chat.UserStore, echoToSender bool) *Dispatcher {
	return &Dispatcher{
		manager:      manager,
		messages:     messages,
		users:        users,
		echoToSender: echoToSender,
		persisted:    atomic.NewInt64(0),
		delivered:    atomic.NewInt64(0),
	}
}

// Deliver сохраняет сообщение и рассылает его по комнате.
// Ошибка сохранения подавляет рассылку и возвращается отправителю —
// сообщение не считается отправленным молча.
func (d *Dispatcher) Deliver(roomID int, from *Client, senderID int, content string) error {
	msg, err := d.messages.SaveMessage(roomID, senderID, content)
	if err != nil {
		return fmt.Errorf("ошибка сохранения сообщения: %w", err)
	}
	d.persisted.Inc()

	// Полные данные отправителя для поля sender; при сбое загрузки
	// рассылка не прерывается — уходит только ID
	sender := chat.User{ID: senderID}
	if u, err := d.users.UserByID(senderID); err == nil {
		sender = *u
	} else {
		log.Printf("⚠️ Не удалось загрузить отправителя %d: %v", senderID, err)
	}

	payload, err := json.Marshal(chat.MessageDTO{
		ID:      msg.ID,
		Sender:  sender,
		Content: msg.Content,
		SentAt:  msg.SentAt,
	})
	if err != nil {
		return fmt.Errorf("ошибка сериализации сообщения: %w", err)
	}

	var skip *Client
	if !d.echoToSender {
		skip = from
	}

	n := d.manager.Broadcast(roomID, payload, skip)
	d.delivered.Add(int64(n))
	log.Printf("✅ Сообщение %d сохранено и доставлено %d сессиям комнаты %d", msg.ID, n, roomID)
	return nil
}

// Persisted возвращает число сохраненных сообщений с момента запуска
func (d *Dispatcher) Persisted() int64 {
	return d.persisted.Load()
}

// Delivered возвращает число доставок в живые сессии с момента запуска
func (d *Dispatcher) Delivered() int64 {
	return d.delivered.Load()
}
