// database/chat_room.go
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"

	"github.com/LilVoxy/market_chat/chat"
)

// Код ошибки MySQL при нарушении уникального ключа
const mysqlErrDuplicateEntry = 1062

// CreateRoom вставляет новую чат-комнату.
// Если параллельная вставка успела первой, уникальный ключ (post_id, buyer_id)
// отбивает дубль — возвращаем chat.ErrDuplicateRoom, чтобы сервис перечитал победителя.
func (s *Store) CreateRoom(postID, sellerID, buyerID int) (*chat.ChatRoom, error) {
	result, err := s.db.Exec(`
		INSERT INTO chat_rooms (post_id, seller_id, buyer_id)
		VALUES (?, ?, ?)
	`, postID, sellerID, buyerID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return nil, chat.ErrDuplicateRoom
		}
		log.Printf("❌ Ошибка создания чат-комнаты: %v", err)
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		log.Printf("❌ Ошибка получения ID чат-комнаты: %v", err)
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	return s.RoomByID(int(lastID))
}

// RoomByParticipants ищет комнату по точной тройке (объявление, продавец, покупатель)
func (s *Store) RoomByParticipants(postID, sellerID, buyerID int) (*chat.ChatRoom, error) {
	return s.scanRoom(s.db.QueryRow(`
		SELECT id, post_id, seller_id, buyer_id, created_at
		FROM chat_rooms
		WHERE post_id = ? AND seller_id = ? AND buyer_id = ?
	`, postID, sellerID, buyerID))
}

// RoomByPostAndBuyer ищет комнату по паре (объявление, покупатель)
func (s *Store) RoomByPostAndBuyer(postID, buyerID int) (*chat.ChatRoom, error) {
	return s.scanRoom(s.db.QueryRow(`
		SELECT id, post_id, seller_id, buyer_id, created_at
		FROM chat_rooms
		WHERE post_id = ? AND buyer_id = ?
	`, postID, buyerID))
}

// RoomByID возвращает комнату по ID
func (s *Store) RoomByID(roomID int) (*chat.ChatRoom, error) {
	return s.scanRoom(s.db.QueryRow(`
		SELECT id, post_id, seller_id, buyer_id, created_at
		FROM chat_rooms
		WHERE id = ?
	`, roomID))
}

// RoomsByUser возвращает все комнаты, где пользователь продавец или покупатель,
// от новых к старым
func (s *Store) RoomsByUser(userID int) ([]chat.ChatRoom, error) {
	rows, err := s.db.Query(`
		SELECT id, post_id, seller_id, buyer_id, created_at
		FROM chat_rooms
		WHERE seller_id = ? OR buyer_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}
	defer rows.Close()

	var rooms []chat.ChatRoom
	for rows.Next() {
		var room chat.ChatRoom
		if err := rows.Scan(&room.ID, &room.PostID, &room.SellerID, &room.BuyerID, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
		}
		rooms = append(rooms, room)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	return rooms, nil
}

func (s *Store) scanRoom(row *sql.Row) (*chat.ChatRoom, error) {
	var room chat.ChatRoom
	err := row.Scan(&room.ID, &room.PostID, &room.SellerID, &room.BuyerID, &room.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}
	return &room, nil
}
