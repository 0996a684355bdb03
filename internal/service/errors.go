package service

import "errors"

var (
	ErrNotRegistered     = errors.New("user is not registered")
	ErrOrderNotFound     = errors.New("order not found") // нет такого заказа или он чужой
	ErrCannotCancel      = errors.New("order cannot be cancelled")
	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrNotReviewable     = errors.New("order cannot be reviewed")
)
