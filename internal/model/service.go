package model

import "time"

// Service услуга из каталога
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`    // в рублях, целое число
	Duration    int       `json:"duration"` // в минутах
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Provider мастер, который выполняет заказ
type Provider struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float64 `json:"rating"` // 0.0 - 5.0
	IsActive        bool    `json:"is_active"`
}

// SumPrices считает стоимость и длительность набора услуг
func SumPrices(services []Service) (cost, duration int) {
	for _, s := range services {
		cost += s.Price
		duration += s.Duration
	}
	return cost, duration
}
