package controller

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/repair_bot/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const throttledText = "⏳ Слишком много запросов, подождите немного"

// RateLimiter ограничивает входящие обновления: не больше messages за window на пользователя
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*userLimiter

	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	metrics *metrics.Recorder
	logger  *zap.Logger
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter messages <= 0 отключает ограничение
func NewRateLimiter(messages int, window time.Duration, rec *metrics.Recorder, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	rl := &RateLimiter{
		limiters: make(map[int64]*userLimiter),
		limit:    rate.Inf,
		burst:    messages,
		idle:     window,
		now:      time.Now,
		metrics:  rec,
		logger:   logger,
	}
	if messages > 0 && window > 0 {
		rl.limit = rate.Limit(float64(messages) / window.Seconds())
	}
	return rl
}

// SetClock подменяет часы, для тестов
func (rl *RateLimiter) SetClock(now func() time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.now = now
}

// Allow расходует один токен пользователя
func (rl *RateLimiter) Allow(userID int64) bool {
	if rl.limit == rate.Inf {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[userID] = ul
	}
	ul.lastSeen = now
	return ul.limiter.AllowN(now, 1)
}

// Middleware для bot.WithMiddlewares. Лишние обновления отбрасываются
func (rl *RateLimiter) Middleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		userID := updateUserID(update)
		if userID == 0 || rl.Allow(userID) {
			next(ctx, b, update)
			return
		}

		rl.metrics.UpdateThrottled(ctx)
		rl.logger.Warn("Update throttled", zap.Int64("user_id", userID))

		if update.CallbackQuery != nil {
			b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
				CallbackQueryID: update.CallbackQuery.ID,
				Text:            throttledText,
			})
		}
	}
}

// Sweep удаляет лимитеры пользователей, молчавших дольше окна.
// К этому моменту их запас токенов полностью восстановлен
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for id, ul := range rl.limiters {
		if now.Sub(ul.lastSeen) > rl.idle {
			delete(rl.limiters, id)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func updateUserID(update *models.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	}
	return 0
}
