package initializers

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DBDSN     string `env:"DB_DSN" env-required:"true"`
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`

	DistanceAPIBase string        `env:"DISTANCE_API_BASE" env-default:"https://router.project-osrm.org/route/v1/driving"`
	DistanceTimeout time.Duration `env:"DISTANCE_TIMEOUT" env-default:"5s"`

	PaystackBaseURL   string        `env:"PAYSTACK_BASE_URL" env-default:"https://api.paystack.co"`
	PaystackSecretKey string        `env:"PAYSTACK_SECRET_KEY"`
	PaymentTimeout    time.Duration `env:"PAYMENT_TIMEOUT" env-default:"30s"`

	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" env-default:"0"`
	DistanceCacheTTL time.Duration `env:"DISTANCE_CACHE_TTL" env-default:"24h"`

	// first_fit or cheapest
	ProviderSelection string `env:"PROVIDER_SELECTION" env-default:"first_fit"`
}

// LoadEnv reads .env (if present) into the process environment and decodes it into a Config.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment.")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
