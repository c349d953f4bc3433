// chat/types.go
package chat

import (
	"time"
)

// User представляет участника чата (продавца или покупателя)
type User struct {
	ID       int    `json:"id"`
	Nickname string `json:"nickname"`
}

// ChatRoom представляет чат-комнату между покупателем и продавцом по конкретному объявлению
type ChatRoom struct {
	ID        int       `json:"id"`
	PostID    int       `json:"postId"`
	SellerID  int       `json:"sellerId"`
	BuyerID   int       `json:"buyerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatMessage представляет сохраненное сообщение в чат-комнате.
// ID назначается хранилищем при вставке и монотонно возрастает —
// именно он используется как курсор при постраничной загрузке истории.
type ChatMessage struct {
	ID         int
	ChatRoomID int
	SenderID   int
	Content    string
	SentAt     time.Time
}

// MessageDTO — формат сообщения на проводе. Один и тот же формат
// используется и для рассылки в реальном времени, и для истории,
// чтобы клиент мог разбирать оба одним декодером.
type MessageDTO struct {
	ID      int       `json:"id"`
	Sender  User      `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}
