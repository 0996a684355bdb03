package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/validation"
	"go.uber.org/zap"
)

type UserService struct {
	users  repository.Users
	logger *zap.Logger
}

func NewUserService(users repository.Users, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// GetByTelegramID получает пользователя, nil если не зарегистрирован
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

func (s *UserService) IsRegistered(ctx context.Context, telegramID int64) (bool, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	return user != nil, nil
}

// Register проверяет анкету и сохраняет пользователя. Повторная регистрация перезаписывает данные
func (s *UserService) Register(ctx context.Context, telegramID int64, name, phone, address string) (*model.User, error) {
	name, err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}
	phone, err = validation.ValidatePhone(phone)
	if err != nil {
		return nil, err
	}
	address, err = validation.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		TelegramID: telegramID,
		Name:       name,
		Phone:      phone,
		Address:    address,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	s.logger.Info("User registered", zap.Int64("user_id", telegramID))
	return user, nil
}

// ValidateField проверяет и нормализует значение поля профиля
func ValidateField(field model.ProfileField, value string) (string, error) {
	switch field {
	case model.ProfileFieldName:
		return validation.ValidateName(value)
	case model.ProfileFieldPhone:
		return validation.ValidatePhone(value)
	case model.ProfileFieldAddress:
		return validation.ValidateAddress(value)
	default:
		return "", fmt.Errorf("unknown profile field %q", field)
	}
}

// UpdateProfile меняет одно поле профиля
func (s *UserService) UpdateProfile(ctx context.Context, telegramID int64, field model.ProfileField, value string) (*model.User, error) {
	value, err := ValidateField(field, value)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateField(ctx, telegramID, field, value)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", field, err)
	}
	if !updated {
		return nil, ErrNotRegistered
	}

	s.logger.Info("Profile updated",
		zap.Int64("user_id", telegramID),
		zap.String("field", string(field)))

	return s.users.GetByTelegramID(ctx, telegramID)
}
