package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App     *App
		Token   *Token
		DB      *DB
		HTTP    *HTTP
		Redis   *Redis
		Storage *Storage
		Payment *Payment
		Pricing *Pricing
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	// Storage selects the persistence driver: "file" keeps every collection
	// in a JSON file under DataDir, "postgres" uses the relational schema.
	Storage struct {
		Driver  string
		DataDir string
	}

	// Payment tunes the charge simulator.
	Payment struct {
		Latency     string
		DeclineRate string
	}

	Pricing struct {
		BaseDailyRate string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: os.Getenv("TOKEN_DURATION"),
	}

	db := &DB{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	storage := &Storage{
		Driver:  os.Getenv("STORAGE_DRIVER"),
		DataDir: os.Getenv("STORAGE_DATA_DIR"),
	}

	payment := &Payment{
		Latency:     os.Getenv("PAYMENT_LATENCY"),
		DeclineRate: os.Getenv("PAYMENT_DECLINE_RATE"),
	}

	pricing := &Pricing{
		BaseDailyRate: os.Getenv("PRICING_BASE_DAILY_RATE"),
	}

	return &Container{
		App:     app,
		Token:   token,
		DB:      db,
		HTTP:    http,
		Redis:   redis,
		Storage: storage,
		Payment: payment,
		Pricing: pricing,
	}, nil
}

func (t *Token) DurationOrDefault() time.Duration {
	d, err := time.ParseDuration(t.Duration)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (s *Storage) DriverOrDefault() string {
	if s.Driver == "" {
		return "file"
	}
	return s.Driver
}

func (s *Storage) DataDirOrDefault() string {
	if s.DataDir == "" {
		return "./data"
	}
	return s.DataDir
}

func (p *Payment) LatencyOrDefault() time.Duration {
	d, err := time.ParseDuration(p.Latency)
	if err != nil || d < 0 {
		return 300 * time.Millisecond
	}
	return d
}

func (p *Payment) DeclineRateOrDefault() float64 {
	rate, err := strconv.ParseFloat(p.DeclineRate, 64)
	if err != nil || rate < 0 || rate > 1 {
		return 0.1
	}
	return rate
}

func (p *Pricing) BaseDailyRateOrDefault() int {
	rate, err := strconv.Atoi(p.BaseDailyRate)
	if err != nil || rate <= 0 {
		return 25
	}
	return rate
}
