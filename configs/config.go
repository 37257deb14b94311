package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBNameTest     string
	RedisHost      string
	RedisPort      int
	JWTSecret      string
	UploadDir      string
	MaxUploadBytes int64
	// PublicBaseURL prefixes picture URLs. Point it at the CDN/object-storage
	// host in production, leave empty to serve from this process.
	PublicBaseURL string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		Port:           envInt("PORT", 3004),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envInt("DB_PORT", 5432),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBNameTest:     os.Getenv("DB_NAME_TEST"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      envInt("REDIS_PORT", 6379),
		JWTSecret:      envString("JWT_SECRET", "secret"),
		UploadDir:      envString("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 1<<20)),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
