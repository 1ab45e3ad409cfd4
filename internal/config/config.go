package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN      string
	ServerPort string

	// секрет для подписи токенов и дефолтный пароль новых пользователей
	TokenSecret     string
	DefaultPassword string

	UploadDir string

	MailHost   string
	MailPort   int
	MailUser   string
	MailPass   string
	MailSender string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:           os.Getenv("DB_DSN"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		TokenSecret:     os.Getenv("TOKEN_SECRET"),
		DefaultPassword: os.Getenv("DEFAULT_PASSWORD"),
		UploadDir:       os.Getenv("UPLOAD_DIR"),
		MailHost:        os.Getenv("MAIL_HOST"),
		MailUser:        os.Getenv("MAIL_USERNAME"),
		MailPass:        os.Getenv("MAIL_PASSWORD"),
		MailSender:      os.Getenv("MAIL_SENDER"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.TokenSecret == "" {
		log.Fatal("TOKEN_SECRET is not set")
	}
	if cfg.DefaultPassword == "" {
		cfg.DefaultPassword = "Xxx@123456"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "static/uploads"
	}

	if portStr := os.Getenv("MAIL_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			cfg.MailPort = p
		}
	}
	if cfg.MailPort == 0 {
		cfg.MailPort = 587
	}
	if cfg.MailSender == "" {
		cfg.MailSender = "noreply@example.com"
	}

	return cfg
}
