package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	*base.Repository
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{Repository: base.NewRepository(pool)}
}

// Statistics сводка по всем таблицам одним запросом.
// Выручка считается только по выполненным заказам
func (r *StatsRepository) Statistics(ctx context.Context) (*model.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status IN ('pending', 'confirmed', 'in_progress')),
			(SELECT COUNT(*) FROM orders WHERE status = 'completed'),
			(SELECT COUNT(*) FROM orders WHERE status = 'cancelled'),
			(SELECT COALESCE(SUM(total_cost), 0) FROM orders WHERE status = 'completed'),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews),
			(SELECT COUNT(*) FROM support_requests)
	`

	var st model.Statistics
	err := r.DB().QueryRow(ctx, query).Scan(
		&st.Users,
		&st.Orders,
		&st.ActiveOrders,
		&st.CompletedOrders,
		&st.CancelledOrders,
		&st.Revenue,
		&st.Reviews,
		&st.AverageRating,
		&st.SupportRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("get statistics: %w", err)
	}

	return &st, nil
}
