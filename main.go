// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/LilVoxy/market_chat/auth"
	"github.com/LilVoxy/market_chat/chat"
	"github.com/LilVoxy/market_chat/config"
	"github.com/LilVoxy/market_chat/database"
	"github.com/LilVoxy/market_chat/monitor"
	"github.com/LilVoxy/market_chat/routes"
	"github.com/LilVoxy/market_chat/websocket"
)

func main() {
	log.Println("Запуск сервера...")

	// Подхватываем .env, если он есть
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ Файл .env не найден: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Инициализация базы данных
	db, err := database.InitDB(cfg.DSN())
	if err != nil {
		log.Fatalf("❌ Не удалось инициализировать базу данных: %v", err)
	}
	defer db.Close()

	store := database.NewStore(db)

	// Сервисы чат-ядра
	roomService := chat.NewRoomService(store, store)
	historyService := chat.NewHistoryService(store, store)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Таблица сессий и диспетчер рассылки
	wsManager := websocket.NewManager()
	dispatcher := websocket.NewDispatcher(wsManager, store, store, cfg.EchoToSender)
	wsHandler := websocket.NewHandler(wsManager, dispatcher, verifier, roomService)

	// Монитор активности
	activityMonitor := monitor.New(wsManager, dispatcher)
	if err := activityMonitor.Start(cfg.StatsInterval); err != nil {
		log.Fatalf("❌ Не удалось запустить монитор активности: %v", err)
	}
	defer activityMonitor.Stop()

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	apiHandler := routes.NewHandler(roomService, historyService, verifier)
	routes.SetupRoutes(router, apiHandler, wsHandler)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Ожидаем сигнал завершения
	<-stop
	log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")

	// Останавливаем прием запросов
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP-сервера: %v", err)
	}

	// Закрываем живые WebSocket-сессии
	wsManager.CloseAll()

	log.Println("👋 Сервер остановлен")
}
