// chat/room_service.go
package chat

import (
	"errors"
	"fmt"
	"log"
)

// RoomService отвечает за создание и поиск чат-комнат
type RoomService struct {
	rooms RoomStore
	posts PostStore
}

// NewRoomService создает новый сервис чат-комнат
func NewRoomService(rooms RoomStore, posts PostStore) *RoomService {
	return &RoomService{rooms: rooms, posts: posts}
}

// CreateOrGetRoom находит существующую комнату для пары (объявление, покупатель)
// или создает новую. Повторный вызов с теми же аргументами возвращает ту же
// комнату — два одновременных клика "начать чат" не создают двух комнат.
func (s *RoomService) CreateOrGetRoom(postID, buyerID int) (*ChatRoom, error) {
	// Определяем продавца по объявлению
	sellerID, err := s.posts.SellerOf(postID)
	if err != nil {
		return nil, err
	}

	// Пользователь не может открыть чат по собственному объявлению
	if sellerID == buyerID {
		return nil, ErrSelfChat
	}

	// Сначала ищем существующую комнату
	room, err := s.rooms.RoomByParticipants(postID, sellerID, buyerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска чат-комнаты: %w", err)
	}
	if room != nil {
		return room, nil
	}

	// Комнаты нет — создаем новую
	room, err = s.rooms.CreateRoom(postID, sellerID, buyerID)
	if errors.Is(err, ErrDuplicateRoom) {
		// Две конкурирующие вставки: победителя определил уникальный ключ,
		// перечитываем его и возвращаем вместо ошибки
		log.Printf("ℹ️ Комната для объявления %d и покупателя %d уже создана параллельным запросом", postID, buyerID)
		winner, qerr := s.rooms.RoomByParticipants(postID, sellerID, buyerID)
		if qerr != nil {
			return nil, fmt.Errorf("ошибка перечитывания чат-комнаты: %w", qerr)
		}
		if winner == nil {
			return nil, fmt.Errorf("чат-комната исчезла после гонки создания: %w", ErrStorage)
		}
		return winner, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка создания чат-комнаты: %w", err)
	}

	log.Printf("✅ Создана чат-комната %d (объявление %d, продавец %d, покупатель %d)",
		room.ID, postID, sellerID, buyerID)
	return room, nil
}

// FindRoomForUser возвращает ID комнаты для пары (объявление, покупатель),
// если она существует. Используется страницей объявления, чтобы показать
// кнопку "продолжить чат". Если комнаты нет — (0, nil).
func (s *RoomService) FindRoomForUser(postID, buyerID int) (int, error) {
	room, err := s.rooms.RoomByPostAndBuyer(postID, buyerID)
	if err != nil {
		return 0, fmt.Errorf("ошибка поиска чат-комнаты: %w", err)
	}
	if room == nil {
		return 0, nil
	}
	return room.ID, nil
}

// RoomsForUser возвращает все комнаты, в которых пользователь участвует
// как продавец или покупатель
func (s *RoomService) RoomsForUser(userID int) ([]ChatRoom, error) {
	rooms, err := s.rooms.RoomsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка чат-комнат: %w", err)
	}
	return rooms, nil
}

// RoomByID возвращает комнату по ID или ErrRoomNotFound
func (s *RoomService) RoomByID(roomID int) (*ChatRoom, error) {
	room, err := s.rooms.RoomByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска чат-комнаты: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// IsParticipant проверяет, что пользователь — продавец или покупатель комнаты.
// Для несуществующей комнаты возвращает ErrRoomNotFound.
func (s *RoomService) IsParticipant(userID, roomID int) (bool, error) {
	room, err := s.rooms.RoomByID(roomID)
	if err != nil {
		return false, fmt.Errorf("ошибка поиска чат-комнаты: %w", err)
	}
	if room == nil {
		return false, ErrRoomNotFound
	}
	return room.SellerID == userID || room.BuyerID == userID, nil
}
