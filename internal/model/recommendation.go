package model

import "github.com/google/uuid"

// MaxRecommendedServices максимум услуг в одной рекомендации
const MaxRecommendedServices = 5

// RecommendationResult результат консультации. Не сохраняется в БД
type RecommendationResult struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
	Success        bool      `json:"success"`
	Rationale      string    `json:"rationale"`
	ServiceIDs     []int64   `json:"service_ids"` // не больше MaxRecommendedServices
	Fallback       bool      `json:"fallback"`    // ответ получен по ключевым словам
}
