package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig содержит параметры подключения к PostgreSQL.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN собирает строку подключения для драйвера lib/pq.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// PoolConfig задает границы пула соединений.
type PoolConfig struct {
	MinIdle     int           // соединений держим открытыми постоянно
	MaxOpen     int           // верхняя граница одновременных операций с БД
	IdleTimeout time.Duration // через сколько закрывать простаивающее соединение
}

// Config объединяет все настройки API и бота.
type Config struct {
	DB             DBConfig
	Pool           PoolConfig
	APIPort        string
	MigrationsDir  string
	SeedFile       string
	StaticDir      string
	AllowedOrigins []string
	ShutdownGrace  time.Duration

	BotToken string
	APIURL   string

	// Бот оператора: изменяет данные, поэтому отвечает только чатам из AdminChatIDs.
	AdminBotToken string
	AdminChatIDs  []int64
}

// Load читает переменные окружения, предварительно подгружая envFile (если он есть).
// Отсутствие файла не считается ошибкой: в контейнере переменные приходят из окружения.
func Load(envFile string) Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Файл %s не загружен: %v", envFile, err)
		}
	}

	return Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Pool: PoolConfig{
			MinIdle:     getInt("DB_POOL_MIN", 1),
			MaxOpen:     getInt("DB_POOL_MAX", 3),
			IdleTimeout: getDuration("DB_POOL_IDLE_TIMEOUT", 60*time.Second),
		},
		APIPort:        getEnv("API_PORT", "8080"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		SeedFile:       getEnv("SEED_FILE", "seed/attractions.sql"),
		StaticDir:      getEnv("STATIC_DIR", "web/public"),
		AllowedOrigins: getList("CORS_ORIGINS", []string{"http://localhost:8080"}),
		ShutdownGrace:  getDuration("SHUTDOWN_GRACE", 10*time.Second),
		BotToken:       os.Getenv("BOT_TOKEN"),
		APIURL:         getEnv("API_URL", "http://localhost:8080"),
		AdminBotToken:  os.Getenv("ADMIN_BOT_TOKEN"),
		AdminChatIDs:   getIDs("ADMIN_CHAT_IDS"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Некорректное значение %s=%q, используется %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Некорректное значение %s=%q, используется %s", key, v, def)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func getIDs(key string) []int64 {
	var ids []int64
	for _, item := range getList(key, nil) {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			log.Printf("Некорректный ID в %s: %q", key, item)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
