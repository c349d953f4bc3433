// chat/errors.go
package chat

import "errors"

// Ошибки чат-ядра. Обработчики HTTP и WebSocket сопоставляют их
// со статусами через errors.Is.
var (
	// ErrBadRequest — некорректный ID комнаты или неверный формат учетных данных
	ErrBadRequest = errors.New("некорректный запрос")

	// ErrUnauthenticated — токен отсутствует, истек или не прошел проверку
	ErrUnauthenticated = errors.New("пользователь не аутентифицирован")

	// ErrSelfChat — покупатель и продавец совпадают: нельзя открыть чат по своему объявлению
	ErrSelfChat = errors.New("продавец и покупатель не могут совпадать")

	// ErrForbidden — пользователь не является участником комнаты
	ErrForbidden = errors.New("доступ запрещен")

	// ErrPostNotFound — объявление не найдено
	ErrPostNotFound = errors.New("объявление не найдено")

	// ErrRoomNotFound — чат-комната не найдена
	ErrRoomNotFound = errors.New("чат-комната не найдена")

	// ErrUserNotFound — пользователь не найден
	ErrUserNotFound = errors.New("пользователь не найден")

	// ErrStorage — хранилище недоступно; сообщение не считается отправленным
	ErrStorage = errors.New("ошибка хранилища")

	// ErrDuplicateRoom возвращается хранилищем, когда две конкурирующие вставки
	// комнаты уперлись в уникальный ключ (post_id, buyer_id). Сервис комнат
	// перечитывает победителя и никогда не отдает эту ошибку наружу.
	ErrDuplicateRoom = errors.New("чат-комната уже существует")
)
