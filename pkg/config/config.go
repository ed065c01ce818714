package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string  `env:"SERVER_PORT" envDefault:"8080"`
	Environment     string  `env:"ENVIRONMENT" envDefault:"development"`
	FirebaseProject string  `env:"FIREBASE_PROJECT_ID"`
	FirebaseAPIKey  string  `env:"FIREBASE_API_KEY"`
	RedisAddr       string  `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string  `env:"REDIS_PASSWORD"`
	CourierFee      float64 `env:"COURIER_FEE" envDefault:"10"`
	JWTSecret       string  `env:"JWT_SECRET"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
