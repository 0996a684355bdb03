package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	*base.Repository
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{Repository: base.NewRepository(pool)}
}

// ListServices возвращает страницу активных услуг, упорядоченных по id
func (r *CatalogRepository) ListServices(ctx context.Context, page, size int) ([]model.Service, error) {
	query := `
		SELECT id, name, price, duration, description, is_active, created_at
		FROM services
		WHERE is_active = TRUE
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB().Query(ctx, query, size, base.Offset(page, size))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Duration, &s.Description, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

func (r *CatalogRepository) CountServices(ctx context.Context) (int, error) {
	var count int
	err := r.DB().QueryRow(ctx, `SELECT COUNT(*) FROM services WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return count, nil
}

// GetService получает активную услугу по ID
func (r *CatalogRepository) GetService(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, price, duration, description, is_active, created_at
		FROM services
		WHERE id = $1 AND is_active = TRUE
	`

	var s model.Service
	err := r.DB().QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Price, &s.Duration, &s.Description, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &s, nil
}

func (r *CatalogRepository) ListProviders(ctx context.Context, page, size int) ([]model.Provider, error) {
	query := `
		SELECT id, name, experience_years, rating, is_active
		FROM providers
		WHERE is_active = TRUE
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB().Query(ctx, query, size, base.Offset(page, size))
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.ExperienceYears, &p.Rating, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}

	return providers, nil
}

func (r *CatalogRepository) GetProvider(ctx context.Context, id int64) (*model.Provider, error) {
	query := `
		SELECT id, name, experience_years, rating, is_active
		FROM providers
		WHERE id = $1 AND is_active = TRUE
	`

	var p model.Provider
	err := r.DB().QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.ExperienceYears, &p.Rating, &p.IsActive)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider by id: %w", err)
	}

	return &p, nil
}
