package model

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrServiceUnavailable = errors.New("service is not available")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrAlreadyReviewed    = errors.New("order already reviewed")
	ErrEmptyOrder         = errors.New("order has no services")
)
