package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"attractions/internal/config"
	"attractions/internal/database"
	"attractions/internal/handler"
	"attractions/internal/repository"
	"attractions/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load(".env")

	// Завершаемся по SIGINT/SIGTERM, дав текущим запросам время закончиться.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(ctx, cfg.DB, cfg.Pool)
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}

	// Выполняем миграции (если есть)
	if _, err := pool.Migrate(ctx, cfg.MigrationsDir); err != nil {
		log.Printf("Миграции не применены: %v", err)
	}

	// Инициализируем репозитории
	locationRepo := repository.NewLocationRepository(pool)
	attractionRepo := repository.NewAttractionRepository(pool, locationRepo)
	experienceRepo := repository.NewExperienceRepository(pool)
	demoRepo := repository.NewDemoRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	// Инициализируем сервисы
	attractionService := service.NewAttractionService(attractionRepo, pool, cfg.SeedFile)
	experienceService := service.NewExperienceService(experienceRepo)
	demoService := service.NewDemoService(demoRepo)
	locationService := service.NewLocationService(locationRepo)
	userService := service.NewUserService(userRepo)
	statusService := service.NewStatusService(pool)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(attractionService, experienceService, demoService, locationService, userService, statusService)
	router := gin.Default()
	router.Use(handler.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        5 * time.Minute,
	}))
	h.Register(router)
	// Браузерный клиент
	router.StaticFile("/", cfg.StaticDir+"/index.html")
	router.Static("/public", cfg.StaticDir)

	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}
	go func() {
		log.Printf("API запущен на порту %s", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Завершение работы")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Сервер остановлен с ошибкой: %v", err)
	}
	if err := pool.Close(); err != nil {
		log.Printf("%v", err)
	}
}
