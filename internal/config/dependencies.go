package config

import (
	"context"
	"database/sql"

	"taskhub/internal/ws"
	"taskhub/pkg/filestore"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Global dependencies shared across handlers, set up in main.
	DB             *sql.DB
	SecretKey      = []byte("secret")
	Validate       = validator.New()
	Ctx            = context.Background()
	RedisClient    *redis.Client
	Files          filestore.FileStore
	Events         *ws.Hub
	MaxUploadBytes int64 = 1 << 20
)
