// monitor/monitor.go
package monitor

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// SessionStats отдает текущее состояние таблицы сессий
type SessionStats interface {
	OpenSessions() int
	ActiveRooms() int
}

// DeliveryStats отдает счетчики диспетчера рассылки
type DeliveryStats interface {
	Persisted() int64
	Delivered() int64
}

// Monitor периодически пишет в лог сводку активности чата
type Monitor struct {
	scheduler *gocron.Scheduler
	sessions  SessionStats
	delivery  DeliveryStats
}

// New создает монитор активности
func New(sessions SessionStats, delivery DeliveryStats) *Monitor {
	return &Monitor{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		delivery:  delivery,
	}
}

// Start запускает периодический отчет в фоне
func (m *Monitor) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("некорректный интервал отчета: %v", interval)
	}

	if _, err := m.scheduler.Every(interval).Do(m.report); err != nil {
		return fmt.Errorf("ошибка планирования отчета активности: %w", err)
	}
	m.scheduler.StartAsync()

	log.Printf("✅ Монитор активности запущен, интервал %v", interval)
	return nil
}

// Stop останавливает планировщик
func (m *Monitor) Stop() {
	m.scheduler.Stop()
}

func (m *Monitor) report() {
	log.Printf("📊 Активность чата: сессий %d, комнат с слушателями %d, сообщений сохранено %d, доставок %d",
		m.sessions.OpenSessions(),
		m.sessions.ActiveRooms(),
		m.delivery.Persisted(),
		m.delivery.Delivered(),
	)
}
