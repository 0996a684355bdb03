package recommendation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/metrics"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

const (
	PathAdvice   = "advice"
	PathFallback = "fallback"
)

// statusProbe короткий запрос для проверки доступности консультанта
const statusProbe = "Ответь одним словом: работаешь?"

// AdviceProvider внешний консультант. Может быть недоступен или не настроен
type AdviceProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Status состояние консультанта для администратора
type Status struct {
	Configured bool
	Available  bool
	LastError  string
	CheckedAt  time.Time
}

// Adapter подбирает услуги по описанию проблемы.
// Ошибки консультанта пользователю не показываются, вместо них работают правила по ключевым словам
type Adapter struct {
	provider AdviceProvider
	logger   *zap.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	mu        sync.Mutex
	lastErr   error
	lastCheck time.Time
}

// NewAdapter provider может быть nil, тогда всегда используется запасной путь
func NewAdapter(provider AdviceProvider, logger *zap.Logger, rec *metrics.Recorder) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		provider: provider,
		logger:   logger,
		metrics:  rec,
		now:      time.Now,
	}
}

// Recommend возвращает до MaxRecommendedServices услуг из текущего каталога.
// Единственная возможная ошибка - *validation.FieldError для слишком короткого описания
func (a *Adapter) Recommend(ctx context.Context, problem string, catalog []model.Service) (*model.RecommendationResult, error) {
	text, err := validation.ValidateProblemText(problem)
	if err != nil {
		return nil, err
	}

	known := make(map[int64]struct{}, len(catalog))
	for _, s := range catalog {
		known[s.ID] = struct{}{}
	}

	consultationID := uuid.New()
	logger := a.logger.With(zap.String("consultation_id", consultationID.String()))

	var adviceText string
	if a.provider != nil {
		answer, err := a.provider.Generate(ctx, BuildPrompt(text, catalog))
		a.recordCall(err)
		if err != nil {
			logger.Warn("Advice provider failed, using fallback", zap.Error(err))
		} else {
			ids := a.filterKnown(logger, ExtractServiceIDs(answer), known)
			if len(ids) > 0 {
				a.metrics.RecommendationServed(ctx, PathAdvice)
				logger.Info("Recommendation from advice provider", zap.Int64s("service_ids", ids))
				return &model.RecommendationResult{
					ConsultationID: consultationID,
					Success:        true,
					Rationale:      answer,
					ServiceIDs:     ids,
				}, nil
			}
			logger.Warn("Advice answer has no usable service ids, using fallback")
			adviceText = answer
		}
	}

	result := a.fallback(logger, text, known)
	result.ConsultationID = consultationID
	if adviceText != "" {
		result.Rationale = adviceText + "\n\n" + result.Rationale
	}

	a.metrics.RecommendationServed(ctx, PathFallback)
	logger.Info("Recommendation from fallback rules", zap.Int64s("service_ids", result.ServiceIDs))

	return result, nil
}

func (a *Adapter) fallback(logger *zap.Logger, text string, known map[int64]struct{}) *model.RecommendationResult {
	category := MatchCategory(text)
	ids := a.filterKnown(logger, category.ServiceIDs, known)

	if len(ids) == 0 && category.Name != generalCategory.Name {
		category = generalCategory
		ids = a.filterKnown(logger, category.ServiceIDs, known)
	}

	return &model.RecommendationResult{
		Success:    len(ids) > 0,
		Rationale:  category.Rationale,
		ServiceIDs: ids,
		Fallback:   true,
	}
}

// filterKnown убирает id, которых нет в каталоге, и обрезает список до MaxRecommendedServices
func (a *Adapter) filterKnown(logger *zap.Logger, ids []int64, known map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			logger.Warn("Dropping recommended service missing from catalog", zap.Int64("service_id", id))
			continue
		}
		out = append(out, id)
		if len(out) == model.MaxRecommendedServices {
			break
		}
	}
	return out
}

func (a *Adapter) recordCall(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
	a.lastCheck = a.now()
}

// Configured настроен ли внешний консультант
func (a *Adapter) Configured() bool {
	return a.provider != nil
}

// LastStatus состояние по последнему обращению, без нового запроса
func (a *Adapter) LastStatus() Status {
	if a.provider == nil {
		return Status{Configured: false, Available: false, LastError: "advice provider is not configured"}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	st := Status{
		Configured: true,
		Available:  a.lastErr == nil,
		CheckedAt:  a.lastCheck,
	}
	if a.lastErr != nil {
		st.LastError = a.lastErr.Error()
	}
	return st
}

// Status делает пробный запрос к консультанту и возвращает его состояние
func (a *Adapter) Status(ctx context.Context) Status {
	if a.provider == nil {
		return Status{Configured: false, Available: false, LastError: "advice provider is not configured"}
	}

	_, err := a.provider.Generate(ctx, statusProbe)
	a.recordCall(err)

	return a.LastStatus()
}
