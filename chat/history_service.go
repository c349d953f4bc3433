// chat/history_service.go
package chat

import (
	"fmt"
)

// DefaultPageSize — размер страницы истории по умолчанию
const DefaultPageSize = 20

// HistoryService отдает историю сообщений комнаты страницами.
// Хранилище отвечает от новых к старым; наружу обе операции отдают
// сообщения в хронологическом порядке (от старых к новым), чтобы клиент
// рисовал начальный экран и вставлял подгруженные блоки без пересортировки.
type HistoryService struct {
	messages MessageStore
	users    UserStore
}

// NewHistoryService создает новый сервис истории сообщений
func NewHistoryService(messages MessageStore, users UserStore) *HistoryService {
	return &HistoryService{messages: messages, users: users}
}

// Recent возвращает limit последних сообщений комнаты в хронологическом порядке
func (s *HistoryService) Recent(chatRoomID, limit int) ([]MessageDTO, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	messages, err := s.messages.RecentMessages(chatRoomID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки последних сообщений: %w", err)
	}

	return s.toDTOs(messages)
}

// Before возвращает до limit сообщений комнаты с id строго меньше cursor,
// в хронологическом порядке. Курсор исключающий: сообщение с id == cursor
// никогда не возвращается повторно, поэтому при прокрутке вверх нет дублей.
func (s *HistoryService) Before(chatRoomID, cursor, limit int) ([]MessageDTO, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	messages, err := s.messages.MessagesBefore(chatRoomID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки сообщений до курсора: %w", err)
	}

	return s.toDTOs(messages)
}

// toDTOs разворачивает выборку хранилища (от новых к старым) в хронологический
// порядок и подставляет данные отправителей
func (s *HistoryService) toDTOs(messages []ChatMessage) ([]MessageDTO, error) {
	dtos := make([]MessageDTO, 0, len(messages))
	senders := make(map[int]User)

	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]

		sender, ok := senders[msg.SenderID]
		if !ok {
			u, err := s.users.UserByID(msg.SenderID)
			if err != nil {
				return nil, fmt.Errorf("ошибка загрузки отправителя %d: %w", msg.SenderID, err)
			}
			sender = *u
			senders[msg.SenderID] = sender
		}

		dtos = append(dtos, MessageDTO{
			ID:      msg.ID,
			Sender:  sender,
			Content: msg.Content,
			SentAt:  msg.SentAt,
		})
	}

	return dtos, nil
}
