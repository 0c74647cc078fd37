package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Geocoder GeocoderConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type GeocoderConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

type CacheConfig struct {
	RestaurantTTLSeconds int // restaurant addresses change rarely
	OrderTTLSeconds      int // delivery addresses repeat only across quick re-renders
}

type HTTPConfig struct {
	Addr string
}

type TelegramConfig struct {
	NotifyToken  string // token for sending new-order notifications to admin
	NotifyChatID int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	geoTimeout, _ := strconv.Atoi(getEnv("GEOCODER_TIMEOUT", "10"))
	restaurantTTL, _ := strconv.Atoi(getEnv("RESTAURANT_COORD_TTL", "900"))
	orderTTL, _ := strconv.Atoi(getEnv("ORDER_COORD_TTL", "30"))
	notifyChat, _ := strconv.ParseInt(getEnv("NOTIFY_CHAT_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "foodcart"),
		},
		Geocoder: GeocoderConfig{
			APIKey:         getEnv("GEOCODER_API_KEY", ""),
			BaseURL:        getEnv("GEOCODER_URL", "https://geocode-maps.yandex.ru/1.x/"),
			TimeoutSeconds: geoTimeout,
		},
		Cache: CacheConfig{
			RestaurantTTLSeconds: restaurantTTL,
			OrderTTLSeconds:      orderTTL,
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Telegram: TelegramConfig{
			NotifyToken:  getEnv("NOTIFY_TOKEN", ""),
			NotifyChatID: notifyChat,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
