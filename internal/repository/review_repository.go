package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	*base.Repository
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет отзыв. Заказ должен принадлежать пользователю и быть выполнен,
// на один заказ - один отзыв
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		var (
			ownerID int64
			status  model.OrderStatus
		)
		err := tx.QueryRow(ctx, `SELECT user_id, status FROM orders WHERE id = $1 FOR UPDATE`, review.OrderID).
			Scan(&ownerID, &status)
		if err != nil {
			if base.IsNotFound(err) {
				return model.ErrNotFound
			}
			return fmt.Errorf("get order: %w", err)
		}
		if ownerID != review.UserID {
			return model.ErrNotFound
		}
		if !status.CanBeReviewed() {
			return model.ErrInvalidStatus
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO reviews (user_id, order_id, rating, comment)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, review.UserID, review.OrderID, review.Rating, review.Comment).Scan(&review.ID, &review.CreatedAt)
		if err != nil {
			if base.IsUniqueViolation(err) {
				return model.ErrAlreadyReviewed
			}
			return fmt.Errorf("insert review: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// Recent последние отзывы с именами авторов
func (r *ReviewRepository) Recent(ctx context.Context, limit int) ([]model.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.order_id, r.rating, r.comment, r.created_at, COALESCE(u.name, '')
		FROM reviews r
		LEFT JOIN users u ON u.telegram_id = r.user_id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1
	`

	rows, err := r.DB().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.OrderID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	return reviews, rows.Err()
}
