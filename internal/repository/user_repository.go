package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT telegram_id, name, phone, address, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var user model.User
	err := r.DB().QueryRow(ctx, query, telegramID).Scan(
		&user.TelegramID,
		&user.Name,
		&user.Phone,
		&user.Address,
		&user.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// Upsert создаёт пользователя или перезаписывает его профиль при повторной регистрации
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, name, phone, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, address = EXCLUDED.address
		RETURNING created_at
	`

	err := r.DB().QueryRow(ctx, query, user.TelegramID, user.Name, user.Phone, user.Address).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// UpdateField обновляет одно поле профиля
func (r *UserRepository) UpdateField(ctx context.Context, telegramID int64, field model.ProfileField, value string) (bool, error) {
	var column string
	switch field {
	case model.ProfileFieldName:
		column = "name"
	case model.ProfileFieldPhone:
		column = "phone"
	case model.ProfileFieldAddress:
		column = "address"
	default:
		return false, fmt.Errorf("unknown profile field %q", field)
	}

	// column берётся только из switch выше
	query := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE telegram_id = $2`, column)
	affected, err := base.ExecAffected(ctx, r.DB(), query, value, telegramID)
	if err != nil {
		return false, fmt.Errorf("update user %s: %w", column, err)
	}

	return affected > 0, nil
}
