// chat/memstore_test.go
package chat

import (
	"sync"
	"time"
)

// memStore — хранилище в памяти для тестов. Реализует все интерфейсы
// из ports.go поверх одного мьютекса, включая уникальный ключ
// (post_id, buyer_id) и монотонные ID сообщений.
type memStore struct {
	mu         sync.Mutex
	rooms      []ChatRoom
	messages   []ChatMessage
	sellers    map[int]int // postID -> sellerID
	users      map[int]User
	nextRoomID int
	nextMsgID  int
}

func newMemStore() *memStore {
	return &memStore{
		sellers:    make(map[int]int),
		users:      make(map[int]User),
		nextRoomID: 1,
		nextMsgID:  1,
	}
}

func (m *memStore) addPost(postID, sellerID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sellers[postID] = sellerID
}

func (m *memStore) addUser(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// seedMessage вставляет сообщение с заранее известным id
func (m *memStore) seedMessage(id, roomID, senderID int, content string, sentAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, ChatMessage{
		ID: id, ChatRoomID: roomID, SenderID: senderID, Content: content, SentAt: sentAt,
	})
	if id >= m.nextMsgID {
		m.nextMsgID = id + 1
	}
}

func (m *memStore) CreateRoom(postID, sellerID, buyerID int) (*ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.PostID == postID && r.BuyerID == buyerID {
			return nil, ErrDuplicateRoom
		}
	}
	room := ChatRoom{
		ID:        m.nextRoomID,
		PostID:    postID,
		SellerID:  sellerID,
		BuyerID:   buyerID,
		CreatedAt: time.Now(),
	}
	m.nextRoomID++
	m.rooms = append(m.rooms, room)
	return &room, nil
}

func (m *memStore) RoomByParticipants(postID, sellerID, buyerID int) (*ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.PostID == postID && r.SellerID == sellerID && r.BuyerID == buyerID {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (m *memStore) RoomByPostAndBuyer(postID, buyerID int) (*ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.PostID == postID && r.BuyerID == buyerID {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (m *memStore) RoomByID(roomID int) (*ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if r.ID == roomID {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (m *memStore) RoomsByUser(userID int) ([]ChatRoom, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ChatRoom
	for _, r := range m.rooms {
		if r.SellerID == userID || r.BuyerID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) SaveMessage(chatRoomID, senderID int, content string) (*ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := ChatMessage{
		ID:         m.nextMsgID,
		ChatRoomID: chatRoomID,
		SenderID:   senderID,
		Content:    content,
		SentAt:     time.Now(),
	}
	m.nextMsgID++
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *memStore) RecentMessages(chatRoomID, limit int) ([]ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ChatMessage
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if m.messages[i].ChatRoomID == chatRoomID {
			out = append(out, m.messages[i])
		}
	}
	return out, nil
}

func (m *memStore) MessagesBefore(chatRoomID, cursor, limit int) ([]ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ChatMessage
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		if m.messages[i].ChatRoomID == chatRoomID && m.messages[i].ID < cursor {
			out = append(out, m.messages[i])
		}
	}
	return out, nil
}

func (m *memStore) SellerOf(postID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sellerID, ok := m.sellers[postID]
	if !ok {
		return 0, ErrPostNotFound
	}
	return sellerID, nil
}

func (m *memStore) UserByID(userID int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}
