// websocket/fakes_test.go
package websocket

import (
	"sync"
	"time"

	"github.com/LilVoxy/market_chat/chat"
)

// fakeMessageStore — хранилище сообщений в памяти с переключаемым отказом
type fakeMessageStore struct {
	mu     sync.Mutex
	nextID int
	saved  []chat.ChatMessage
	fail   bool
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{nextID: 1}
}

func (f *fakeMessageStore) SaveMessage(chatRoomID, senderID int, content string) (*chat.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, chat.ErrStorage
	}
	msg := chat.ChatMessage{
		ID:         f.nextID,
		ChatRoomID: chatRoomID,
		SenderID:   senderID,
		Content:    content,
		SentAt:     time.Now(),
	}
	f.nextID++
	f.saved = append(f.saved, msg)
	return &msg, nil
}

func (f *fakeMessageStore) RecentMessages(chatRoomID, limit int) ([]chat.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []chat.ChatMessage
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if f.saved[i].ChatRoomID == chatRoomID {
			out = append(out, f.saved[i])
		}
	}
	return out, nil
}

func (f *fakeMessageStore) MessagesBefore(chatRoomID, cursor, limit int) ([]chat.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []chat.ChatMessage
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if f.saved[i].ChatRoomID == chatRoomID && f.saved[i].ID < cursor {
			out = append(out, f.saved[i])
		}
	}
	return out, nil
}

func (f *fakeMessageStore) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *fakeMessageStore) savedMessages() []chat.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]chat.ChatMessage, len(f.saved))
	copy(out, f.saved)
	return out
}

// fakeUserStore отдает заранее заданных пользователей
type fakeUserStore struct {
	users map[int]chat.User
}

func newFakeUserStore(users ...chat.User) *fakeUserStore {
	m := make(map[int]chat.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserStore{users: m}
}

func (f *fakeUserStore) UserByID(userID int) (*chat.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, chat.ErrUserNotFound
	}
	return &u, nil
}

// fakeRoomStore держит фиксированный набор комнат для теста обработчика
type fakeRoomStore struct {
	rooms map[int]chat.ChatRoom
}

func newFakeRoomStore(rooms ...chat.ChatRoom) *fakeRoomStore {
	m := make(map[int]chat.ChatRoom)
	for _, r := range rooms {
		m[r.ID] = r
	}
	return &fakeRoomStore{rooms: m}
}

func (f *fakeRoomStore) CreateRoom(postID, sellerID, buyerID int) (*chat.ChatRoom, error) {
	return nil, chat.ErrStorage
}

func (f *fakeRoomStore) RoomByParticipants(postID, sellerID, buyerID int) (*chat.ChatRoom, error) {
	for _, r := range f.rooms {
		if r.PostID == postID && r.SellerID == sellerID && r.BuyerID == buyerID {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomStore) RoomByPostAndBuyer(postID, buyerID int) (*chat.ChatRoom, error) {
	for _, r := range f.rooms {
		if r.PostID == postID && r.BuyerID == buyerID {
			room := r
			return &room, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomStore) RoomByID(roomID int) (*chat.ChatRoom, error) {
	r, ok := f.rooms[roomID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRoomStore) RoomsByUser(userID int) ([]chat.ChatRoom, error) {
	var out []chat.ChatRoom
	for _, r := range f.rooms {
		if r.SellerID == userID || r.BuyerID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakePostStore отдает продавцов объявлений
type fakePostStore struct {
	sellers map[int]int
}

func (f *fakePostStore) SellerOf(postID int) (int, error) {
	sellerID, ok := f.sellers[postID]
	if !ok {
		return 0, chat.ErrPostNotFound
	}
	return sellerID, nil
}

// newTestClient создает клиента с буфером, но без сокета — для тестов
// таблицы сессий и диспетчера
func newTestClient(roomID int, buffer int) *Client {
	return &Client{
		SessionID: "test-session",
		RoomID:    roomID,
		Send:      make(chan []byte, buffer),
	}
}
