// Package storage is the identity collaborator: user records with their chat
// counters in Postgres, and the maintenance flag shared through Redis.
package storage

import (
	"context"
	"errors"

	"reelchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoRedis      = errors.New("redis is not configured")
)

type Storage interface {
	EnsureTelegramUser(ctx context.Context, telegramID int64, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	IncrementChatCount(ctx context.Context, userID string) error

	IsMaintenanceMode(ctx context.Context) (bool, error)
	SetMaintenanceMode(ctx context.Context, enabled bool) error
	SubscribeMaintenance(ctx context.Context) (*redis.PubSub, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor. Either client may be nil for tools that need
// only one of them.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}

// Migrate creates or updates the tables owned by this package.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}
