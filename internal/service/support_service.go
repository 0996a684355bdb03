package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/validation"
	"go.uber.org/zap"
)

type SupportService struct {
	support repository.Support
	logger  *zap.Logger
}

func NewSupportService(support repository.Support, logger *zap.Logger) *SupportService {
	return &SupportService{
		support: support,
		logger:  logger,
	}
}

// Submit сохраняет обращение в поддержку
func (s *SupportService) Submit(ctx context.Context, userID int64, message string) (*model.SupportRequest, error) {
	message, err := validation.ValidateSupportMessage(message)
	if err != nil {
		return nil, err
	}

	request := &model.SupportRequest{UserID: userID, Message: message}
	if err := s.support.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create support request: %w", err)
	}

	s.logger.Info("Support request saved",
		zap.Int64("user_id", userID),
		zap.Int64("request_id", request.ID))

	return request, nil
}

func (s *SupportService) Recent(ctx context.Context, limit int) ([]model.SupportRequest, error) {
	return s.support.Recent(ctx, limit)
}
