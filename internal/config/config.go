package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerAddr       string
	Debug            bool
	PostgresDSN      string
	MongoURI         string
	LineChannelToken string
	CloudinaryURL    string
}

type JWTConfig struct {
	Secret        []byte
	RefreshSecret []byte
	TTLHours      int
}

func Load() *Config {
	return &Config{
		ServerAddr:       getEnv("SERVER_ADDR", ":8080"),
		Debug:            getEnv("APP_DEBUG", "") == "true",
		PostgresDSN:      getEnv("POSTGRES_DSN", "postgres://localhost:5432/campusx?sslmode=disable"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		LineChannelToken: os.Getenv("LINE_CHANNEL_TOKEN"),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
	}
}

func LoadJWT() JWTConfig {
	secret := []byte(getEnv("JWT_SECRET", "dev-secret"))
	refresh := []byte(os.Getenv("JWT_REFRESH_SECRET"))
	if len(refresh) == 0 {
		refresh = secret
	}
	ttl, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttl <= 0 {
		ttl = 24
	}
	return JWTConfig{Secret: secret, RefreshSecret: refresh, TTLHours: ttl}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
