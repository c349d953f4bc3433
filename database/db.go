// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// InitDB устанавливает соединение с базой данных и проверяет схему
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("❌ Ошибка подключения к БД: %v", err)
		return nil, err
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Printf("❌ Ошибка проверки соединения с БД: %v", err)
		return nil, err
	}

	// Устанавливаем параметры пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Успешное подключение к базе данных")

	// Проверяем существование необходимых таблиц
	if err := createTablesIfNotExist(db); err != nil {
		log.Printf("❌ Ошибка создания таблиц: %v", err)
		return nil, err
	}

	return db, nil
}

// Создание необходимых таблиц, если они не существуют
func createTablesIfNotExist(db *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		nickname VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	createPostsTable := `
	CREATE TABLE IF NOT EXISTS posts (
		id INT AUTO_INCREMENT PRIMARY KEY,
		seller_id INT NOT NULL,
		title VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (seller_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// Уникальный ключ (post_id, buyer_id) схлопывает гонку двух одновременных
	// созданий комнаты в одну строку
	createChatRoomsTable := `
	CREATE TABLE IF NOT EXISTS chat_rooms (
		id INT AUTO_INCREMENT PRIMARY KEY,
		post_id INT NOT NULL,
		seller_id INT NOT NULL,
		buyer_id INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_post_buyer (post_id, buyer_id),
		INDEX idx_seller (seller_id),
		INDEX idx_buyer (buyer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	createChatMessagesTable := `
	CREATE TABLE IF NOT EXISTS chat_messages (
		id INT AUTO_INCREMENT PRIMARY KEY,
		chat_room_id INT NOT NULL,
		sender_id INT NOT NULL,
		content TEXT NOT NULL,
		sent_at TIMESTAMP(6) NOT NULL,
		FOREIGN KEY (chat_room_id) REFERENCES chat_rooms(id),
		INDEX idx_room_cursor (chat_room_id, id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	for name, query := range map[string]string{
		"users":         createUsersTable,
		"posts":         createPostsTable,
		"chat_rooms":    createChatRoomsTable,
		"chat_messages": createChatMessagesTable,
	} {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("ошибка создания таблицы %s: %v", name, err)
		}
	}

	log.Println("✅ Структура базы данных проверена и актуализирована")
	return nil
}
