package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	*base.Repository
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{Repository: base.NewRepository(pool)}
}

const orderColumns = `
	o.id, o.user_id, o.provider_id, o.address, o.order_date, o.time_slot,
	o.total_cost, o.status, o.created_at, COALESCE(p.name, '')
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ProviderID,
		&o.Address,
		&o.Date,
		&o.TimeSlot,
		&o.TotalCost,
		&o.Status,
		&o.CreatedAt,
		&o.ProviderName,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func civilDate(t time.Time) pgtype.Date {
	return pgtype.Date{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

// CreateOrder создаёт заказ и связи с услугами в одной транзакции.
// Если хотя бы одна услуга исчезла из каталога, транзакция откатывается
// и возвращается model.ErrServiceUnavailable
func (r *OrderRepository) CreateOrder(ctx context.Context, order model.NewOrder) (int64, error) {
	if len(order.ServiceIDs) == 0 {
		return 0, model.ErrEmptyOrder
	}

	var orderID int64
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (user_id, provider_id, address, order_date, time_slot, total_cost, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
			order.UserID,
			order.ProviderID,
			order.Address,
			civilDate(order.Date),
			order.TimeSlot,
			order.TotalCost,
			model.OrderStatusPending,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, serviceID := range order.ServiceIDs {
			// Блокируем строку услуги до конца транзакции, чтобы её не выключили между проверкой и вставкой
			var id int64
			err := tx.QueryRow(ctx, `
				SELECT id FROM services
				WHERE id = $1 AND is_active = TRUE
				FOR SHARE
			`, serviceID).Scan(&id)
			if err != nil {
				if base.IsNotFound(err) {
					return fmt.Errorf("service %d: %w", serviceID, model.ErrServiceUnavailable)
				}
				return fmt.Errorf("check service %d: %w", serviceID, err)
			}

			if _, err := tx.Exec(ctx, `
				INSERT INTO order_services (order_id, service_id)
				VALUES ($1, $2)
			`, orderID, serviceID); err != nil {
				return fmt.Errorf("insert order service %d: %w", serviceID, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	return orderID, nil
}

// GetOrder получает заказ вместе с услугами
func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN providers p ON p.id = o.provider_id
		WHERE o.id = $1
	`

	order, err := scanOrder(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	services, err := r.orderServices(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Services = services

	return order, nil
}

func (r *OrderRepository) orderServices(ctx context.Context, orderID int64) ([]model.Service, error) {
	query := `
		SELECT s.id, s.name, s.price, s.duration, s.description, s.is_active, s.created_at
		FROM order_services os
		JOIN services s ON s.id = os.service_id
		WHERE os.order_id = $1
		ORDER BY s.id
	`

	rows, err := r.DB().Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Duration, &s.Description, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order service: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

// SetOrderStatus меняет статус. false если заказа нет
func (r *OrderRepository) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, model.ErrInvalidStatus
	}

	affected, err := base.ExecAffected(ctx, r.DB(), `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	return affected > 0, nil
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.DB().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

// ListOrdersForUser заказы пользователя, новые первыми
func (r *OrderRepository) ListOrdersForUser(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN providers p ON p.id = o.provider_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2 OFFSET $3
	`

	orders, err := r.listOrders(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders for user: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) CountOrdersForUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.DB().QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count orders for user: %w", err)
	}
	return count, nil
}

// ListOrders все заказы для администратора
func (r *OrderRepository) ListOrders(ctx context.Context, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		LEFT JOIN providers p ON p.id = o.provider_id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1 OFFSET $2
	`

	orders, err := r.listOrders(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) OrderServiceIDs(ctx context.Context, orderID int64) ([]int64, error) {
	rows, err := r.DB().Query(ctx, `
		SELECT service_id FROM order_services
		WHERE order_id = $1
		ORDER BY service_id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order service ids: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect order service ids: %w", err)
	}
	return ids, nil
}
