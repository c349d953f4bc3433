// config/config.go
package config

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
)

// Config содержит настройки сервера, читаемые из переменных окружения.
// Файл .env подхватывается в main через godotenv.
type Config struct {
	// Адрес HTTP-сервера
	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`

	// Настройки подключения к MySQL
	DBUser     string `env:"DB_USER,default=root"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     int    `env:"DB_PORT,default=3306"`
	DBName     string `env:"DB_NAME,default=marketdb"`

	// Секрет для проверки подписи JWT
	JWTSecret string `env:"JWT_SECRET,required=true"`

	// Отправлять ли отправителю эхо его собственного сообщения при рассылке
	EchoToSender bool `env:"CHAT_ECHO_TO_SENDER,default=true"`

	// Интервал отчета монитора активности
	StatsInterval time.Duration `env:"STATS_INTERVAL,default=1m"`
}

// Load читает конфигурацию из окружения
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}
	return cfg, nil
}

// DSN собирает строку подключения к MySQL
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
