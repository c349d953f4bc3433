// database/message.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/LilVoxy/market_chat/chat"
	"github.com/LilVoxy/market_chat/processor"
)

// SaveMessage сохраняет сообщение и возвращает его с назначенными ID и временем.
// Текст сжимается перед записью (см. processor). AUTO_INCREMENT гарантирует,
// что порядок ID совпадает с порядком вставки — ID и служит курсором истории.
func (s *Store) SaveMessage(chatRoomID, senderID int, content string) (*chat.ChatMessage, error) {
	sentAt := time.Now()

	result, err := s.db.Exec(`
		INSERT INTO chat_messages (chat_room_id, sender_id, content, sent_at)
		VALUES (?, ?, ?, ?)
	`, chatRoomID, senderID, processor.EncodeContent(content), sentAt)
	if err != nil {
		log.Printf("❌ Ошибка сохранения сообщения: %v", err)
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		log.Printf("❌ Ошибка получения ID сообщения: %v", err)
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	return &chat.ChatMessage{
		ID:         int(lastID),
		ChatRoomID: chatRoomID,
		SenderID:   senderID,
		Content:    content,
		SentAt:     sentAt,
	}, nil
}

// RecentMessages возвращает limit последних сообщений комнаты, от новых к старым
func (s *Store) RecentMessages(chatRoomID, limit int) ([]chat.ChatMessage, error) {
	return s.queryMessages(`
		SELECT id, chat_room_id, sender_id, content, sent_at
		FROM chat_messages
		WHERE chat_room_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, chatRoomID, limit)
}

// MessagesBefore возвращает до limit сообщений комнаты с id < cursor, от новых к старым
func (s *Store) MessagesBefore(chatRoomID, cursor, limit int) ([]chat.ChatMessage, error) {
	return s.queryMessages(`
		SELECT id, chat_room_id, sender_id, content, sent_at
		FROM chat_messages
		WHERE chat_room_id = ? AND id < ?
		ORDER BY id DESC
		LIMIT ?
	`, chatRoomID, cursor, limit)
}

func (s *Store) queryMessages(query string, args ...interface{}) ([]chat.ChatMessage, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}
	defer rows.Close()

	var messages []chat.ChatMessage
	for rows.Next() {
		var msg chat.ChatMessage
		var encoded string
		if err := rows.Scan(&msg.ID, &msg.ChatRoomID, &msg.SenderID, &encoded, &msg.SentAt); err != nil {
			return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
		}

		// Распаковываем сжатый текст
		content, err := processor.DecodeContent(encoded)
		if err != nil {
			log.Printf("❌ Ошибка распаковки сообщения %d: %v", msg.ID, err)
			msg.Content = "[ошибка чтения сообщения]"
		} else {
			msg.Content = content
		}

		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	return messages, nil
}
