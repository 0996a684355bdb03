package ordering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

const (
	msgSessionExpired      = "Черновик заказа не найден или устарел. Начните заново: /order"
	msgNoRecommendation    = "Нет рекомендации для оформления. Опишите проблему: /consult"
	msgRecommendationEmpty = "Рекомендованные услуги больше недоступны, выберите услуги вручную: /order"
)

// SessionStore хранилище сессий пользователей.
// Lock сериализует все операции одного пользователя, разные пользователи не блокируют друг друга
type SessionStore interface {
	Lock(userID int64) (unlock func())
	Draft(userID int64) *Draft
	SaveDraft(userID int64, d *Draft)
	ClearDraft(userID int64)
	Recommendation(userID int64) *model.RecommendationResult
	SaveRecommendation(userID int64, r *model.RecommendationResult)
	ClearRecommendation(userID int64)
}

// Recommender подбор услуг по описанию проблемы
type Recommender interface {
	Recommend(ctx context.Context, problem string, catalog []model.Service) (*model.RecommendationResult, error)
}

// RecommendationReply результат консультации вместе с услугами для показа
type RecommendationReply struct {
	Result    *model.RecommendationResult
	Services  []model.Service
	Rejection *Rejection
}

// Service точка входа для транспорта: начать заказ, отправить событие, консультация
type Service struct {
	machine     *Machine
	catalog     repository.Catalog
	sessions    SessionStore
	recommender Recommender
	logger      *zap.Logger
}

func NewService(machine *Machine, catalog repository.Catalog, sessions SessionStore, recommender Recommender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		machine:     machine,
		catalog:     catalog,
		sessions:    sessions,
		recommender: recommender,
		logger:      logger,
	}
}

func (s *Service) Machine() *Machine {
	return s.machine
}

// BeginOrder начинает новый черновик, старый выбрасывается
func (s *Service) BeginOrder(ctx context.Context, userID int64) (*Reply, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	return s.begin(ctx, NewDraft(userID, s.machine.now()))
}

// BeginOrderWith начинает черновик с уже выбранными услугами, например повтор заказа.
// Недоступные услуги отбрасываются, лимит соблюдается
func (s *Service) BeginOrderWith(ctx context.Context, userID int64, serviceIDs []int64) (*Reply, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	ids, err := s.availableIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	d := NewDraft(userID, s.machine.now())
	d.setSelected(ids)
	return s.begin(ctx, d)
}

func (s *Service) begin(ctx context.Context, d *Draft) (*Reply, error) {
	screen, err := s.machine.Present(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("begin order: %w", err)
	}

	s.sessions.SaveDraft(d.UserID, d)
	s.logger.Info("Order draft started", zap.Int64("user_id", d.UserID), zap.Int("selected", d.SelectedCount()))

	return &Reply{State: d.State, Screen: screen}, nil
}

// SubmitEvent применяет событие к черновику пользователя
func (s *Service) SubmitEvent(ctx context.Context, userID int64, ev Event) (*Reply, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	d := s.sessions.Draft(userID)
	if d == nil {
		if _, ok := ev.(Cancel); ok {
			return &Reply{State: StateIdle, Cancelled: true}, nil
		}
		return &Reply{State: StateIdle, Rejection: reject(KindState, "", msgSessionExpired)}, nil
	}

	next, reply, err := s.machine.Apply(ctx, d, ev)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", EventName(ev), err)
	}

	if next == nil {
		s.sessions.ClearDraft(userID)
	} else if !reply.Rejected() {
		s.sessions.SaveDraft(userID, next)
	}

	return reply, nil
}

// Current показывает текущий шаг без изменений
func (s *Service) Current(ctx context.Context, userID int64) (*Reply, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	d := s.sessions.Draft(userID)
	if d == nil {
		return &Reply{State: StateIdle, Rejection: reject(KindState, "", msgSessionExpired)}, nil
	}

	screen, err := s.machine.Present(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("present draft: %w", err)
	}
	return &Reply{State: d.State, Screen: screen}, nil
}

// CancelOrder синхронно удаляет черновик
func (s *Service) CancelOrder(ctx context.Context, userID int64) (*Reply, error) {
	return s.SubmitEvent(ctx, userID, Cancel{})
}

// BeginRecommendation консультация по описанию проблемы. Результат запоминается в сессии
func (s *Service) BeginRecommendation(ctx context.Context, userID int64, problem string) (*RecommendationReply, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	catalog, err := AllServices(ctx, s.catalog)
	if err != nil {
		return nil, fmt.Errorf("begin recommendation: %w", err)
	}

	result, err := s.recommender.Recommend(ctx, problem, catalog)
	if err != nil {
		if fe, ok := validation.AsFieldError(err); ok {
			return &RecommendationReply{Rejection: reject(KindValidation, fe.Field, fe.Message)}, nil
		}
		return nil, fmt.Errorf("begin recommendation: %w", err)
	}

	s.sessions.SaveRecommendation(userID, result)

	byID := make(map[int64]model.Service, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = svc
	}
	services := make([]model.Service, 0, len(result.ServiceIDs))
	for _, id := range result.ServiceIDs {
		if svc, ok := byID[id]; ok {
			services = append(services, svc)
		}
	}

	s.logger.Info("Recommendation prepared",
		zap.Int64("user_id", userID),
		zap.String("consultation_id", result.ConsultationID.String()),
		zap.Bool("fallback", result.Fallback),
		zap.Int64s("service_ids", result.ServiceIDs))

	return &RecommendationReply{Result: result, Services: services}, nil
}

// AcceptRecommendation создаёт черновик с рекомендованными услугами и сразу переходит к выбору времени
func (s *Service) AcceptRecommendation(ctx context.Context, userID int64) (*Reply, error) {
	unlock := s.sessions.Lock(userID)
	defer unlock()

	rec := s.sessions.Recommendation(userID)
	if rec == nil || len(rec.ServiceIDs) == 0 {
		return &Reply{State: StateIdle, Rejection: reject(KindState, "", msgNoRecommendation)}, nil
	}

	// каталог мог измениться после консультации
	ids, err := s.availableIDs(ctx, rec.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("accept recommendation: %w", err)
	}
	if len(ids) == 0 {
		s.sessions.ClearRecommendation(userID)
		return &Reply{State: StateIdle, Rejection: reject(KindReferential, validation.FieldServices, msgRecommendationEmpty)}, nil
	}

	d := NewDraft(userID, s.machine.now())
	d.setSelected(ids)
	d.Seeded = true
	d.State = StateSelectingTime

	screen, err := s.machine.Present(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("accept recommendation: %w", err)
	}

	s.sessions.SaveDraft(userID, d)
	s.sessions.ClearRecommendation(userID)
	s.logger.Info("Recommendation accepted", zap.Int64("user_id", userID), zap.Int64s("service_ids", ids))

	return &Reply{State: d.State, Screen: screen}, nil
}

// availableIDs оставляет только существующие услуги, без дублей и не больше лимита
func (s *Service) availableIDs(ctx context.Context, ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		exists, err := s.machine.serviceExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check service %d: %w", id, err)
		}
		if !exists {
			s.logger.Warn("Dropping unavailable service", zap.Int64("service_id", id))
			continue
		}
		out = append(out, id)
		if len(out) == s.machine.cfg.MaxServices {
			break
		}
	}
	return out, nil
}
