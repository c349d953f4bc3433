// chat/ports.go
package chat

// Интерфейсы хранилищ, которые потребляет чат-ядро.
// Реализация для MySQL находится в пакете database,
// тесты подставляют свои реализации в памяти.

// RoomStore — долговременное хранилище чат-комнат
type RoomStore interface {
	// CreateRoom вставляет новую комнату и возвращает ее с назначенным ID.
	// При нарушении уникального ключа (post_id, buyer_id) возвращает ErrDuplicateRoom.
	CreateRoom(postID, sellerID, buyerID int) (*ChatRoom, error)

	// RoomByParticipants ищет комнату по точной тройке (postID, sellerID, buyerID).
	// Если комнаты нет — (nil, nil).
	RoomByParticipants(postID, sellerID, buyerID int) (*ChatRoom, error)

	// RoomByPostAndBuyer ищет комнату по паре (postID, buyerID). Если комнаты нет — (nil, nil).
	RoomByPostAndBuyer(postID, buyerID int) (*ChatRoom, error)

	// RoomByID возвращает комнату по ID. Если комнаты нет — (nil, nil).
	RoomByID(roomID int) (*ChatRoom, error)

	// RoomsByUser возвращает все комнаты, где пользователь продавец или покупатель
	RoomsByUser(userID int) ([]ChatRoom, error)
}

// MessageStore — долговременное хранилище сообщений (только append)
type MessageStore interface {
	// SaveMessage сохраняет сообщение и возвращает его с назначенными ID и временем
	SaveMessage(chatRoomID, senderID int, content string) (*ChatMessage, error)

	// RecentMessages возвращает limit последних сообщений комнаты, от новых к старым
	RecentMessages(chatRoomID, limit int) ([]ChatMessage, error)

	// MessagesBefore возвращает до limit сообщений комнаты с id < cursor, от новых к старым
	MessagesBefore(chatRoomID, cursor, limit int) ([]ChatMessage, error)
}

// PostStore отдает продавца объявления
type PostStore interface {
	// SellerOf возвращает ID владельца объявления. Если объявления нет — ErrPostNotFound.
	SellerOf(postID int) (int, error)
}

// UserStore отдает данные пользователя для поля sender в исходящих сообщениях
type UserStore interface {
	// UserByID возвращает пользователя. Если пользователя нет — ErrUserNotFound.
	UserByID(userID int) (*User, error)
}
