// database/store.go
package database

import (
	"database/sql"
)

// Store реализует интерфейсы хранилищ из пакета chat поверх MySQL.
// Соединение передается явно из main, без пакетных глобалей.
type Store struct {
	db *sql.DB
}

// NewStore создает хранилище поверх готового соединения
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}
