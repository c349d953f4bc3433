// websocket/dispatcher_test.go
package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/market_chat/chat"
)

func TestDeliverPersistsThenBroadcasts(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore(chat.User{ID: 10, Nickname: "seller"})
	d := NewDispatcher(m, store, users, true)

	sender := newTestClient(7, 4)
	other := newTestClient(7, 4)
	m.Join(7, sender, 10)
	m.Join(7, other, 20)

	require.NoError(t, d.Deliver(7, sender, 10, "hello"))

	// Сообщение надежно сохранено
	saved := store.savedMessages()
	require.Len(t, saved, 1)
	assert.Equal(t, 7, saved[0].ChatRoomID)
	assert.Equal(t, 10, saved[0].SenderID)
	assert.Equal(t, "hello", saved[0].Content)

	// Собеседник получил кадр с полным отправителем
	var dto chat.MessageDTO
	require.NoError(t, json.Unmarshal(<-other.Send, &dto))
	assert.Equal(t, saved[0].ID, dto.ID)
	assert.Equal(t, chat.User{ID: 10, Nickname: "seller"}, dto.Sender)
	assert.Equal(t, "hello", dto.Content)
	assert.False(t, dto.SentAt.IsZero())

	// При включенном эхе отправитель получает копию
	require.Len(t, sender.Send, 1)
	assert.Equal(t, int64(1), d.Persisted())
	assert.Equal(t, int64(2), d.Delivered())
}

func TestDeliverWithoutEcho(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore(chat.User{ID: 10, Nickname: "seller"})
	d := NewDispatcher(m, store, users, false)

	sender := newTestClient(7, 4)
	other := newTestClient(7, 4)
	m.Join(7, sender, 10)
	m.Join(7, other, 20)

	require.NoError(t, d.Deliver(7, sender, 10, "hello"))

	assert.Empty(t, sender.Send, "эхо выключено — отправитель не получает копию")
	assert.Len(t, other.Send, 1)
	assert.Equal(t, int64(1), d.Delivered())
}

func TestDeliverFanOutCompleteness(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore(chat.User{ID: 10, Nickname: "seller"})
	d := NewDispatcher(m, store, users, false)

	sender := newTestClient(7, 4)
	m.Join(7, sender, 10)
	listeners := make([]*Client, 3)
	for i := range listeners {
		listeners[i] = newTestClient(7, 4)
		m.Join(7, listeners[i], 20+i)
	}

	require.NoError(t, d.Deliver(7, sender, 10, "всем привет"))

	// Все три собеседника получили сообщение ровно по одному разу
	for i, l := range listeners {
		assert.Len(t, l.Send, 1, "слушатель %d", i)
	}
}

func TestDeliverStorageFailureSuppressesBroadcast(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore(chat.User{ID: 10, Nickname: "seller"})
	d := NewDispatcher(m, store, users, true)

	sender := newTestClient(7, 4)
	other := newTestClient(7, 4)
	m.Join(7, sender, 10)
	m.Join(7, other, 20)

	store.setFail(true)
	err := d.Deliver(7, sender, 10, "пропадет")
	require.ErrorIs(t, err, chat.ErrStorage)

	// Неудачное сохранение подавляет рассылку целиком
	assert.Empty(t, sender.Send)
	assert.Empty(t, other.Send)
	assert.Equal(t, int64(0), d.Persisted())
	assert.Equal(t, int64(0), d.Delivered())
}

func TestDeliverNoListeners(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore(chat.User{ID: 10, Nickname: "seller"})
	d := NewDispatcher(m, store, users, true)

	// Слушателей нет — сообщение все равно сохраняется для истории
	require.NoError(t, d.Deliver(7, nil, 10, "в пустоту"))
	assert.Len(t, store.savedMessages(), 1)
	assert.Equal(t, int64(0), d.Delivered())
}

func TestDeliverUnknownSenderFallsBackToID(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore() // пользователей нет
	d := NewDispatcher(m, store, users, true)

	listener := newTestClient(7, 4)
	m.Join(7, listener, 20)

	require.NoError(t, d.Deliver(7, nil, 10, "hello"))

	var dto chat.MessageDTO
	require.NoError(t, json.Unmarshal(<-listener.Send, &dto))
	assert.Equal(t, 10, dto.Sender.ID)
	assert.Empty(t, dto.Sender.Nickname)
}

func TestDeliverOrdering(t *testing.T) {
	m := NewManager()
	store := newFakeMessageStore()
	users := newFakeUserStore(chat.User{ID: 10, Nickname: "seller"})
	d := NewDispatcher(m, store, users, true)

	// Последовательные доставки получают возрастающие ID
	require.NoError(t, d.Deliver(7, nil, 10, "первое"))
	require.NoError(t, d.Deliver(7, nil, 10, "второе"))

	saved := store.savedMessages()
	require.Len(t, saved, 2)
	assert.Less(t, saved[0].ID, saved[1].ID)
}
