package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/recommendation"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"go.uber.org/zap"
)

// AdviceStatus состояние внешнего советника
type AdviceStatus interface {
	Status(ctx context.Context) recommendation.Status
}

type AdminService struct {
	admins map[int64]struct{}
	stats  repository.Stats
	advice AdviceStatus
	logger *zap.Logger
}

func NewAdminService(adminIDs []int64, stats repository.Stats, advice AdviceStatus, logger *zap.Logger) *AdminService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AdminService{
		admins: admins,
		stats:  stats,
		advice: advice,
		logger: logger,
	}
}

// IsAdmin входит ли пользователь в ADMIN_IDS
func (s *AdminService) IsAdmin(telegramID int64) bool {
	_, ok := s.admins[telegramID]
	return ok
}

func (s *AdminService) Statistics(ctx context.Context) (*model.Statistics, error) {
	st, err := s.stats.Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	return st, nil
}

// AdviceStatus живая проверка советника
func (s *AdminService) AdviceStatus(ctx context.Context) recommendation.Status {
	st := s.advice.Status(ctx)
	s.logger.Info("Advice status checked",
		zap.Bool("configured", st.Configured),
		zap.Bool("available", st.Available))
	return st
}
