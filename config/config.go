package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultImagePath  = "Sample_image.jpg"
	defaultOutputPath = "restoration.png"
	defaultMaxSide    = 1024
)

type Config struct {
	ImagePath     string // входное изображение для CLI
	OutputPath    string // куда CLI сохраняет сетку
	TelegramToken string
	MaxSide       int // фото из бота больше этого размера уменьшаются
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		ImagePath:     getEnv("IMAGE_PATH", defaultImagePath),
		OutputPath:    getEnv("OUTPUT_PATH", defaultOutputPath),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		MaxSide:       defaultMaxSide,
	}

	if raw := os.Getenv("MAX_SIDE"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid MAX_SIDE %q", raw)
		}
		cfg.MaxSide = v
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
