// database/user.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/market_chat/chat"
)

// UserByID возвращает пользователя для поля sender исходящих сообщений
func (s *Store) UserByID(userID int) (*chat.User, error) {
	var user chat.User
	err := s.db.QueryRow(`
		SELECT id, nickname FROM users WHERE id = ?
	`, userID).Scan(&user.ID, &user.Nickname)

	if err == sql.ErrNoRows {
		return nil, chat.ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	return &user, nil
}
