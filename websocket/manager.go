// websocket/manager.go
package websocket

import (
	"log"
	"sync"
)

// Manager владеет таблицей живых сессий по комнатам: roomID -> сессии -> userID.
// Таблица живет только в памяти процесса и строится заново при рестарте —
// это присутствие, а не источник истины. Создается в main и передается
// явно всем, кому нужна, никаких пакетных глобалей.
//
// Инварианты: сессия состоит не более чем в одной комнате; каждая
// аутентифицированная сессия комнаты R присутствует в rooms[R]; повторное
// удаление — no-op.
type Manager struct {
	mu    sync.RWMutex
	rooms map[int]map[*Client]int
}

// NewManager создает пустую таблицу сессий
func NewManager() *Manager {
	return &Manager{
		rooms: make(map[int]map[*Client]int),
	}
}

// Join регистрирует аутентифицированную сессию в комнате
func (m *Manager) Join(roomID int, client *Client, userID int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.rooms[roomID]
	if room == nil {
		room = make(map[*Client]int)
		m.rooms[roomID] = room
	}
	room[client] = userID

	log.Printf("👤 Пользователь %d присоединился к комнате %d (сессия %s)", userID, roomID, client.SessionID)
}

// Drop удаляет сессию из ее комнаты (если она там была) и закрывает
// исходящий буфер. Идемпотентен: удаление уже отсутствующей сессии — no-op.
// Вызывается из defer читающего насоса при закрытии соединения,
// независимо от того, была ли сессия аутентифицирована.
func (m *Manager) Drop(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.rooms[client.RoomID]
	if room != nil {
		if _, ok := room[client]; ok {
			delete(room, client)
			if len(room) == 0 {
				delete(m.rooms, client.RoomID)
			}
		}
	}

	// Закрывается под тем же замком, под которым Broadcast пишет в буфер,
	// поэтому отправка в закрытый канал исключена
	client.closeOnce.Do(func() {
		close(client.Send)
	})
}

// Broadcast кладет payload в буфер каждой сессии комнаты, кроме skip.
// Отправка каждой сессии независима и негарантирована: переполненный
// буфер означает пропуск доставки этой сессии, ее закрытием займется
// ее собственный обработчик. Возвращает число успешных доставок.
func (m *Manager) Broadcast(roomID int, payload []byte, skip *Client) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	room := m.rooms[roomID]
	if len(room) == 0 {
		// Живых слушателей нет — сообщение уже сохранено и дождется
		// загрузки истории
		return 0
	}

	delivered := 0
	for client := range room {
		if client == skip {
			continue
		}
		select {
		case client.Send <- payload:
			delivered++
		default:
			log.Printf("⚠️ Буфер сессии %s переполнен, доставка в комнату %d пропущена", client.SessionID, roomID)
		}
	}
	return delivered
}

// OpenSessions возвращает число зарегистрированных сессий
func (m *Manager) OpenSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, room := range m.rooms {
		total += len(room)
	}
	return total
}

// ActiveRooms возвращает число комнат с хотя бы одной живой сессией
func (m *Manager) ActiveRooms() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// CloseAll закрывает сокеты всех зарегистрированных сессий.
// Каждый читающий насос завершится ошибкой чтения и приберет за собой сам.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	clients := make([]*Client, 0)
	for _, room := range m.rooms {
		for client := range room {
			clients = append(clients, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range clients {
		client.Socket.Close()
	}
}
