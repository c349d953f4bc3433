// database/post.go
package database

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/market_chat/chat"
)

// SellerOf возвращает ID владельца объявления
func (s *Store) SellerOf(postID int) (int, error) {
	var sellerID int
	err := s.db.QueryRow(`
		SELECT seller_id FROM posts WHERE id = ?
	`, postID).Scan(&sellerID)

	if err == sql.ErrNoRows {
		return 0, chat.ErrPostNotFound
	} else if err != nil {
		return 0, fmt.Errorf("%w: %v", chat.ErrStorage, err)
	}

	return sellerID, nil
}
