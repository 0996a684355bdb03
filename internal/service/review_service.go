package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/validation"
	"go.uber.org/zap"
)

type ReviewService struct {
	reviews repository.Reviews
	orders  *OrderService
	logger  *zap.Logger
}

func NewReviewService(reviews repository.Reviews, orders *OrderService, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		orders:  orders,
		logger:  logger,
	}
}

// CanReview проверка до того, как спрашивать оценку
func (s *ReviewService) CanReview(ctx context.Context, userID, orderID int64) error {
	order, err := s.orders.Details(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanBeReviewed() {
		return ErrNotReviewable
	}
	return nil
}

func (s *ReviewService) Create(ctx context.Context, userID, orderID int64, rating int, comment string) (*model.Review, error) {
	if err := validation.ValidateRating(rating); err != nil {
		return nil, err
	}
	comment, err := validation.ValidateReviewComment(comment)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		UserID:  userID,
		OrderID: orderID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, model.ErrInvalidStatus):
			return nil, ErrNotReviewable
		case errors.Is(err, model.ErrAlreadyReviewed):
			return nil, model.ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.Info("Review created",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", orderID),
		zap.Int("rating", rating))

	return review, nil
}

func (s *ReviewService) Recent(ctx context.Context, limit int) ([]model.Review, error) {
	return s.reviews.Recent(ctx, limit)
}
