package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultAppPort        = "8080"
	defaultCartSessionTTL = 2 * time.Hour
	defaultDeliveryFee    = "2.99"
	defaultTaxRate        = "0.05"
	defaultCurrencySymbol = "₹"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	JWTSecret         string
	InternalSecretKey string
	CORSOrigins       []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NatsURL string

	CartSessionTTL time.Duration
	DeliveryFee    decimal.Decimal
	TaxRate        decimal.Decimal
	CurrencySymbol string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort: getEnv("APP_PORT", defaultAppPort),
		AppEnv:  os.Getenv("APP_ENV"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		NatsURL: os.Getenv("NATS_URL"),

		CartSessionTTL: getDuration("CART_SESSION_TTL", defaultCartSessionTTL),
		DeliveryFee:    getDecimal("DELIVERY_FEE", defaultDeliveryFee),
		TaxRate:        getDecimal("TAX_RATE", defaultTaxRate),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", defaultCurrencySymbol),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getDecimal(key, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(os.Getenv(key))
	if err != nil || d.IsNegative() {
		return decimal.RequireFromString(fallback)
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
