package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port              string `env:"PORT,                default=8080"`
	Env               string `env:"ENV,                 default=development"`
	LogLevel          string `env:"LOG_LEVEL,           default=info"`
	JWTSecret         string `env:"JWT_SECRET"`
	AdminCreationKey  string `env:"ADMIN_CREATION_KEY"`
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN, default=*"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Razorpay RazorpayConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=commerce_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RazorpayConfig struct {
	KeyID     string `env:"RAZORPAY_KEY_ID"`
	KeySecret string `env:"RAZORPAY_SECRET_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
