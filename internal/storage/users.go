package storage

import (
	"context"
	"errors"
	"fmt"

	"reelchat/backend/internal/models"

	"gorm.io/gorm"
)

// EnsureTelegramUser returns the user bound to a Telegram chat, creating it on
// first contact. The username is refreshed when Telegram reports a new one.
func (s *Service) EnsureTelegramUser(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	var user models.User
	result := s.DB.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		Attrs(models.User{Username: username}).
		FirstOrCreate(&user, models.User{TelegramID: telegramID})
	if result.Error != nil {
		return nil, fmt.Errorf("ensure telegram user %d: %w", telegramID, result.Error)
	}

	if username != "" && user.Username != username {
		if err := s.DB.WithContext(ctx).Model(&user).Update("username", username).Error; err != nil {
			return nil, fmt.Errorf("update username for %s: %w", user.ID, err)
		}
	}
	return &user, nil
}

func (s *Service) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &user, nil
}

// IncrementChatCount bumps the counter in a single UPDATE so concurrent matches
// never lose an increment. Unknown users are reported as ErrUserNotFound.
func (s *Service) IncrementChatCount(ctx context.Context, userID string) error {
	result := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("chat_count", gorm.Expr("chat_count + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("increment chat count for %s: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
