package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"local"`
	Database   `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Booking    `yaml:"booking"`
	SMTP       `yaml:"smtp"`
	Kafka      `yaml:"kafka"`
	Redis      `yaml:"redis"`
	RateLimit  `yaml:"rate_limit"`
}

type Database struct {
	Driver   string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	Host     string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string        `yaml:"password" env:"DB_PASSWORD"`
	DBName   string        `yaml:"dbname" env:"DB_NAME" env-default:"room_booker"`
	SSLMode  string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timeout  time.Duration `yaml:"timeout" env:"DB_TIMEOUT" env-default:"5s"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Booking holds the engine policy knobs. Times of day are "HH:MM" in Timezone.
type Booking struct {
	Timezone               string        `yaml:"timezone" env:"BOOKING_TIMEZONE" env-default:"Asia/Jakarta"`
	OpenTime               string        `yaml:"open_time" env-default:"08:00"`
	CloseTime              string        `yaml:"close_time" env-default:"16:00"`
	SlotStep               time.Duration `yaml:"slot_step" env-default:"1h"`
	ShowBlockedSlots       bool          `yaml:"show_blocked_slots" env-default:"false"`
	// HideOrganizer drops requester names from the public room schedule.
	HideOrganizer          bool          `yaml:"hide_schedule_organizer" env:"BOOKING_HIDE_ORGANIZER"`
	DefaultRejectionReason string        `yaml:"default_rejection_reason" env-default:"No reason provided"`
	QRCodeURL              string        `yaml:"qr_code_url" env-default:"https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=%s"`
	NotifyTimeout          time.Duration `yaml:"notify_timeout" env-default:"10s"`
	CompletionInterval     time.Duration `yaml:"completion_interval" env-default:"1m"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM" env-default:"noreply@campus.local"`
	FromName string `yaml:"from_name" env:"SMTP_FROM_NAME" env-default:"Room Booking"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"booking.events"`
}

type Redis struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type RateLimit struct {
	Requests int           `yaml:"requests" env-default:"30"`
	Window   time.Duration `yaml:"window" env-default:"1m"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &os.PathError{Op: "config", Path: configPath, Err: os.ErrNotExist}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
