package storage

import (
	"context"
	"errors"
	"fmt"

	"reelchat/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	maintenanceOn  = "on"
	maintenanceOff = "off"
)

// IsMaintenanceMode reads the shared flag. A missing key means off.
func (s *Service) IsMaintenanceMode(ctx context.Context) (bool, error) {
	if s.Redis == nil {
		return false, ErrNoRedis
	}
	value, err := s.Redis.Get(ctx, config.MaintenanceKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read maintenance flag: %w", err)
	}
	return ParseMaintenance(value)
}

// SetMaintenanceMode stores the flag and announces it so every server instance
// updates its hub.
func (s *Service) SetMaintenanceMode(ctx context.Context, enabled bool) error {
	if s.Redis == nil {
		return ErrNoRedis
	}
	value := FormatMaintenance(enabled)
	if err := s.Redis.Set(ctx, config.MaintenanceKey, value, 0).Err(); err != nil {
		return fmt.Errorf("store maintenance flag: %w", err)
	}
	if err := s.Redis.Publish(ctx, config.MaintenanceChannel, value).Err(); err != nil {
		return fmt.Errorf("publish maintenance flag: %w", err)
	}
	return nil
}

func (s *Service) SubscribeMaintenance(ctx context.Context) (*redis.PubSub, error) {
	if s.Redis == nil {
		return nil, ErrNoRedis
	}
	return s.Redis.Subscribe(ctx, config.MaintenanceChannel), nil
}

func FormatMaintenance(enabled bool) string {
	if enabled {
		return maintenanceOn
	}
	return maintenanceOff
}

func ParseMaintenance(value string) (bool, error) {
	switch value {
	case maintenanceOn, "1", "true":
		return true, nil
	case maintenanceOff, "0", "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("unknown maintenance value %q", value)
	}
}
