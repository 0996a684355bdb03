package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SupportRepository struct {
	*base.Repository
}

func NewSupportRepository(pool *pgxpool.Pool) *SupportRepository {
	return &SupportRepository{Repository: base.NewRepository(pool)}
}

func (r *SupportRepository) Create(ctx context.Context, request *model.SupportRequest) error {
	err := r.DB().QueryRow(ctx, `
		INSERT INTO support_requests (user_id, message)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, request.UserID, request.Message).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return fmt.Errorf("create support request: %w", err)
	}
	return nil
}

func (r *SupportRepository) Recent(ctx context.Context, limit int) ([]model.SupportRequest, error) {
	rows, err := r.DB().Query(ctx, `
		SELECT id, user_id, message, created_at
		FROM support_requests
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent support requests: %w", err)
	}
	defer rows.Close()

	var requests []model.SupportRequest
	for rows.Next() {
		var sr model.SupportRequest
		if err := rows.Scan(&sr.ID, &sr.UserID, &sr.Message, &sr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan support request: %w", err)
		}
		requests = append(requests, sr)
	}

	return requests, rows.Err()
}
