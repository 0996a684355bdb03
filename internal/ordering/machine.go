package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/metrics"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

const (
	DefaultMaxServices = 10
	DefaultPageSize    = 5
	catalogPageSize    = 100
)

const (
	msgWrongStep         = "Это действие сейчас недоступно, продолжите с текущего шага"
	msgServiceGone       = "Услуга больше недоступна, выберите другую"
	msgNoProfileAddress  = "В профиле не указан адрес, введите адрес вручную"
	msgNoProviders       = "Сейчас нет свободных мастеров, попробуйте позже"
	msgCommitFailed      = "Не удалось оформить заказ, попробуйте ещё раз"
	msgSelectionChanged  = "Состав заказа изменился, проверьте сводку ещё раз"
	msgCommitServiceGone = "Одна из услуг больше недоступна, заказ не создан. Измените список услуг"
	msgProviderGone      = "Назначенный мастер больше не принимает заказы. Черновик сброшен, оформите заказ заново: /order"
)

type Config struct {
	MaxServices int
	PageSize    int
	Window      validation.Window
}

func (c Config) withDefaults() Config {
	if c.MaxServices <= 0 {
		c.MaxServices = DefaultMaxServices
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Window.OfferDays <= 0 {
		c.Window.OfferDays = validation.DefaultOfferDays
	}
	if c.Window.AcceptDays <= 0 {
		c.Window.AcceptDays = validation.DefaultAcceptDays
	}
	return c
}

// ProfileSource источник адреса из профиля
type ProfileSource interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// Machine функция переходов черновика. Сама ничего не хранит:
// получает черновик, возвращает новый или тот же при отказе
type Machine struct {
	catalog  repository.Catalog
	orders   repository.Orders
	profiles ProfileSource
	assigner ProviderAssigner
	cfg      Config
	now      func() time.Time
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

func NewMachine(
	catalog repository.Catalog,
	orders repository.Orders,
	profiles ProfileSource,
	assigner ProviderAssigner,
	cfg Config,
	logger *zap.Logger,
	rec *metrics.Recorder,
) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		catalog:  catalog,
		orders:   orders,
		profiles: profiles,
		assigner: assigner,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		logger:   logger,
		metrics:  rec,
	}
}

// SetClock подменяет часы, время берётся в поясе возвращаемого значения
func (m *Machine) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Machine) Config() Config {
	return m.cfg
}

// Apply применяет событие к черновику.
// Возвращает черновик для сохранения (nil - удалить) и ответ.
// error только для неожиданных сбоев, черновик в этом случае не меняется
func (m *Machine) Apply(ctx context.Context, d *Draft, ev Event) (*Draft, *Reply, error) {
	if d == nil {
		return nil, nil, errors.New("apply event: draft is nil")
	}

	m.metrics.EventHandled(ctx, EventName(ev))

	if _, ok := ev.(ConfirmOrder); ok {
		return m.commit(ctx, d)
	}

	next, rej, err := m.transition(ctx, d.Clone(), ev)
	if err != nil {
		m.logger.Error("Order event failed",
			zap.Int64("user_id", d.UserID),
			zap.String("state", d.State.String()),
			zap.String("event", EventName(ev)),
			zap.Error(err))
		return d, nil, err
	}

	if rej != nil {
		m.metrics.EventRejected(ctx, string(rej.Kind))
		m.logger.Info("Order event rejected",
			zap.Int64("user_id", d.UserID),
			zap.String("state", d.State.String()),
			zap.String("event", EventName(ev)),
			zap.String("kind", string(rej.Kind)),
			zap.String("field", rej.Field))

		screen, err := m.Present(ctx, d)
		if err != nil {
			return d, nil, err
		}
		return d, &Reply{State: d.State, Screen: screen, Rejection: rej}, nil
	}

	return m.finish(ctx, d, next, ev)
}

func (m *Machine) finish(ctx context.Context, prev *Draft, next *Draft, ev Event) (*Draft, *Reply, error) {
	if next == nil {
		m.logger.Info("Order draft cancelled", zap.Int64("user_id", prev.UserID), zap.String("state", prev.State.String()))
		return nil, &Reply{State: StateIdle, Cancelled: true}, nil
	}

	next.UpdatedAt = m.now()
	screen, err := m.Present(ctx, next)
	if err != nil {
		return prev, nil, err
	}

	m.logger.Debug("Order draft moved",
		zap.Int64("user_id", next.UserID),
		zap.String("event", EventName(ev)),
		zap.String("from", prev.State.String()),
		zap.String("to", next.State.String()))

	return next, &Reply{State: next.State, Screen: screen}, nil
}

func reject(kind RejectionKind, field, message string) *Rejection {
	return &Rejection{Kind: kind, Field: field, Message: message}
}

func wrongStep() *Rejection {
	return reject(KindState, "", msgWrongStep)
}

// fromFieldError переводит ошибку валидации в отказ нужной категории
func fromFieldError(err error, kind RejectionKind) (*Rejection, error) {
	if fe, ok := validation.AsFieldError(err); ok {
		return reject(kind, fe.Field, fe.Message), nil
	}
	return nil, err
}

// transition единственная функция переходов. Работает с копией черновика
func (m *Machine) transition(ctx context.Context, d *Draft, ev Event) (*Draft, *Rejection, error) {
	switch e := ev.(type) {
	case Cancel:
		return nil, nil, nil

	case Back:
		return m.back(d, e.To)

	case ToggleService:
		if d.State != StateSelectingServices {
			return nil, wrongStep(), nil
		}
		svc, err := m.catalog.GetService(ctx, e.ServiceID)
		if err != nil {
			return nil, nil, fmt.Errorf("get service %d: %w", e.ServiceID, err)
		}
		if svc == nil && !d.IsSelected(e.ServiceID) {
			return nil, reject(KindReferential, validation.FieldServices, msgServiceGone), nil
		}
		if !d.toggle(e.ServiceID, m.cfg.MaxServices) {
			return nil, reject(KindCapacity, validation.FieldServices,
				fmt.Sprintf("Можно выбрать не более %d услуг", m.cfg.MaxServices)), nil
		}
		return d, nil, nil

	case ChangePage:
		if d.State != StateSelectingServices {
			return nil, wrongStep(), nil
		}
		total, err := m.totalPages(ctx)
		if err != nil {
			return nil, nil, err
		}
		d.Page = clampPage(e.Page, total)
		return d, nil, nil

	case ConfirmServices:
		if d.State != StateSelectingServices {
			return nil, wrongStep(), nil
		}
		if d.SelectedCount() == 0 {
			return nil, reject(KindValidation, validation.FieldServices, "Выберите хотя бы одну услугу"), nil
		}
		if _, err := validation.ValidateServiceIDs(ctx, d.SelectedIDs(), m.cfg.MaxServices, m.serviceExists); err != nil {
			rej, err := fromFieldError(err, KindReferential)
			return nil, rej, err
		}
		d.State = StateSelectingTime
		return d, nil, nil

	case SelectTime:
		if d.State != StateSelectingTime {
			return nil, wrongStep(), nil
		}
		if !validation.IsTimeSlot(e.Slot) {
			return nil, reject(KindValidation, validation.FieldTime, "Выберите время из предложенных вариантов"), nil
		}
		d.TimeSlot = e.Slot
		d.State = StateSelectingDate
		return d, nil, nil

	case SelectDate:
		if d.State != StateSelectingDate {
			return nil, wrongStep(), nil
		}
		now := m.now()
		if err := validation.ValidateSlot(e.Date, d.TimeSlot, m.cfg.Window, now); err != nil {
			rej, err := fromFieldError(err, KindValidation)
			return nil, rej, err
		}
		d.Date = validation.StartOfDay(e.Date, now.Location())
		d.State = StateSelectingAddress
		return d, nil, nil

	case UseProfileAddress:
		if d.State != StateSelectingAddress {
			return nil, wrongStep(), nil
		}
		address, err := m.profileAddress(ctx, d.UserID)
		if err != nil {
			return nil, nil, err
		}
		if address == "" {
			return nil, reject(KindValidation, validation.FieldAddress, msgNoProfileAddress), nil
		}
		d.Address = address
		return m.enterSummary(ctx, d)

	case RequestCustomAddress:
		if d.State != StateSelectingAddress {
			return nil, wrongStep(), nil
		}
		d.State = StateAwaitingCustomAddress
		return d, nil, nil

	case EnterAddress:
		if d.State != StateAwaitingCustomAddress {
			return nil, wrongStep(), nil
		}
		address, err := validation.ValidateAddress(e.Text)
		if err != nil {
			rej, err := fromFieldError(err, KindValidation)
			return nil, rej, err
		}
		d.Address = address
		return m.enterSummary(ctx, d)

	case ConfirmOrder:
		// до transition не доходит, см. Apply
		return nil, wrongStep(), nil

	default:
		return nil, wrongStep(), nil
	}
}

// back возвращает на предыдущий шаг. Выбор в черновике остаётся
func (m *Machine) back(d *Draft, to State) (*Draft, *Rejection, error) {
	if to >= d.State || d.State == StateCommitted {
		return nil, wrongStep(), nil
	}

	switch to {
	case StateSelectingServices:
	case StateSelectingTime:
		if d.SelectedCount() == 0 {
			return nil, wrongStep(), nil
		}
	case StateSelectingDate:
		if d.TimeSlot == "" {
			return nil, wrongStep(), nil
		}
	case StateSelectingAddress:
		if d.Date.IsZero() {
			return nil, wrongStep(), nil
		}
	default:
		return nil, wrongStep(), nil
	}

	d.State = to
	return d, nil, nil
}

// enterSummary назначает мастера один раз и считает стоимость
// только если набор услуг изменился с прошлого расчёта
func (m *Machine) enterSummary(ctx context.Context, d *Draft) (*Draft, *Rejection, error) {
	ids := d.SelectedIDs()
	services, missing, err := m.resolveServices(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if missing != 0 {
		return nil, reject(KindReferential, validation.FieldServices,
			fmt.Sprintf("Услуга #%d больше недоступна, измените список услуг", missing)), nil
	}

	if !d.providerAssigned() {
		provider, err := m.assigner.Assign(ctx)
		if err != nil {
			if errors.Is(err, ErrNoProviders) {
				return nil, reject(KindReferential, "", msgNoProviders), nil
			}
			return nil, nil, fmt.Errorf("assign provider: %w", err)
		}
		d.ProviderID = provider.ID
		d.ProviderName = provider.Name
		m.logger.Info("Provider assigned",
			zap.Int64("user_id", d.UserID),
			zap.Int64("provider_id", provider.ID))
	}

	if key := selectionKey(ids); d.costKey != key {
		d.TotalCost, d.TotalDuration = model.SumPrices(services)
		d.costKey = key
	}

	d.State = StateSummary
	return d, nil, nil
}

// commit проверяет черновик целиком и создаёт заказ.
// При успехе возвращает nil-черновик, при отказе исходный.
// Если назначенный мастер пропал, черновик тоже сбрасывается
func (m *Machine) commit(ctx context.Context, d *Draft) (*Draft, *Reply, error) {
	rej, err := m.revalidate(ctx, d)
	if err != nil {
		return d, nil, err
	}
	if rej == nil {
		return m.create(ctx, d)
	}

	m.metrics.EventRejected(ctx, string(rej.Kind))
	m.logger.Info("Order commit rejected",
		zap.Int64("user_id", d.UserID),
		zap.String("kind", string(rej.Kind)),
		zap.String("field", rej.Field))

	// мастер не переназначается, черновик с ним уже не оформить
	if rej.Field == validation.FieldProvider {
		return nil, &Reply{State: StateIdle, Rejection: rej}, nil
	}

	screen, err := m.Present(ctx, d)
	if err != nil {
		return d, nil, err
	}
	return d, &Reply{State: d.State, Screen: screen, Rejection: rej}, nil
}

// revalidate повторная проверка всего черновика перед записью
func (m *Machine) revalidate(ctx context.Context, d *Draft) (*Rejection, error) {
	if d.State != StateSummary {
		return wrongStep(), nil
	}

	ids := d.SelectedIDs()
	if _, err := validation.ValidateServiceIDs(ctx, ids, m.cfg.MaxServices, m.serviceExists); err != nil {
		return fromFieldError(err, KindReferential)
	}
	if err := validation.ValidateSlot(d.Date, d.TimeSlot, m.cfg.Window, m.now()); err != nil {
		return fromFieldError(err, KindValidation)
	}
	if _, err := validation.ValidateAddress(d.Address); err != nil {
		return fromFieldError(err, KindValidation)
	}

	if !d.providerAssigned() {
		return wrongStep(), nil
	}
	provider, err := m.catalog.GetProvider(ctx, d.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("get provider %d: %w", d.ProviderID, err)
	}
	if provider == nil {
		return reject(KindReferential, validation.FieldProvider, msgProviderGone), nil
	}

	if !d.CostMatchesSelection() {
		return reject(KindState, validation.FieldServices, msgSelectionChanged), nil
	}

	return nil, nil
}

func (m *Machine) create(ctx context.Context, d *Draft) (*Draft, *Reply, error) {
	ids := d.SelectedIDs()
	orderID, err := m.orders.CreateOrder(ctx, model.NewOrder{
		UserID:     d.UserID,
		ProviderID: d.ProviderID,
		Address:    d.Address,
		Date:       d.Date,
		TimeSlot:   d.TimeSlot,
		TotalCost:  d.TotalCost,
		ServiceIDs: ids,
	})
	if err != nil {
		rej := reject(KindPersistence, "", msgCommitFailed)
		if errors.Is(err, model.ErrServiceUnavailable) {
			rej = reject(KindReferential, validation.FieldServices, msgCommitServiceGone)
		}
		m.metrics.EventRejected(ctx, string(rej.Kind))
		m.logger.Error("Failed to create order",
			zap.Int64("user_id", d.UserID),
			zap.Int64s("service_ids", ids),
			zap.Error(err))

		screen, perr := m.Present(ctx, d)
		if perr != nil {
			// сводку не показать, но отказ всё равно ожидаемый
			screen = &Screen{State: d.State}
		}
		return d, &Reply{State: d.State, Screen: screen, Rejection: rej}, nil
	}

	services, _, err := m.resolveServices(ctx, ids)
	if err != nil {
		// заказ уже создан, подтверждение отдаём без списка услуг
		m.logger.Warn("Failed to load services for confirmation", zap.Int64("order_id", orderID), zap.Error(err))
		services = nil
	}

	m.metrics.OrderCommitted(ctx)
	m.logger.Info("Order created",
		zap.Int64("user_id", d.UserID),
		zap.Int64("order_id", orderID),
		zap.Int64("provider_id", d.ProviderID),
		zap.Int("total_cost", d.TotalCost))

	return nil, &Reply{
		State: StateCommitted,
		Confirmation: &Confirmation{
			OrderID:       orderID,
			Services:      services,
			ProviderName:  d.ProviderName,
			Date:          d.Date,
			TimeSlot:      d.TimeSlot,
			Address:       d.Address,
			TotalCost:     d.TotalCost,
			TotalDuration: d.TotalDuration,
		},
	}, nil
}

// Present собирает экран для текущего шага черновика
func (m *Machine) Present(ctx context.Context, d *Draft) (*Screen, error) {
	s := &Screen{
		State:         d.State,
		Selected:      d.SelectedIDs(),
		MaxServices:   m.cfg.MaxServices,
		TimeSlot:      d.TimeSlot,
		Date:          d.Date,
		Address:       d.Address,
		ProviderName:  d.ProviderName,
		TotalCost:     d.TotalCost,
		TotalDuration: d.TotalDuration,
	}

	switch d.State {
	case StateSelectingServices:
		total, err := m.totalPages(ctx)
		if err != nil {
			return nil, err
		}
		s.TotalPages = total
		s.Page = clampPage(d.Page, total)
		services, err := m.catalog.ListServices(ctx, s.Page, m.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list services: %w", err)
		}
		s.Services = services

	case StateSelectingTime:
		s.TimeSlots = validation.TimeSlots

	case StateSelectingDate:
		s.Dates = validation.OfferedDates(m.now(), m.cfg.Window)

	case StateSelectingAddress:
		address, err := m.profileAddress(ctx, d.UserID)
		if err != nil {
			return nil, err
		}
		s.ProfileAddress = address

	case StateSummary:
		services, _, err := m.resolveServices(ctx, d.SelectedIDs())
		if err != nil {
			return nil, err
		}
		s.Services = services
	}

	return s, nil
}

func (m *Machine) serviceExists(ctx context.Context, id int64) (bool, error) {
	svc, err := m.catalog.GetService(ctx, id)
	if err != nil {
		return false, err
	}
	return svc != nil, nil
}

// resolveServices загружает услуги по id. missing - первый отсутствующий id
func (m *Machine) resolveServices(ctx context.Context, ids []int64) ([]model.Service, int64, error) {
	services := make([]model.Service, 0, len(ids))
	for _, id := range ids {
		svc, err := m.catalog.GetService(ctx, id)
		if err != nil {
			return nil, 0, fmt.Errorf("get service %d: %w", id, err)
		}
		if svc == nil {
			return nil, id, nil
		}
		services = append(services, *svc)
	}
	return services, 0, nil
}

func (m *Machine) profileAddress(ctx context.Context, userID int64) (string, error) {
	if m.profiles == nil {
		return "", nil
	}
	user, err := m.profiles.GetByTelegramID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.Address, nil
}

func (m *Machine) totalPages(ctx context.Context) (int, error) {
	count, err := m.catalog.CountServices(ctx)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	pages := (count + m.cfg.PageSize - 1) / m.cfg.PageSize
	if pages == 0 {
		pages = 1
	}
	return pages, nil
}

func clampPage(page, total int) int {
	if page < 0 {
		return 0
	}
	if page >= total {
		return total - 1
	}
	return page
}

// AllServices весь активный каталог постранично
func AllServices(ctx context.Context, catalog repository.Catalog) ([]model.Service, error) {
	var all []model.Service
	for page := 0; ; page++ {
		batch, err := catalog.ListServices(ctx, page, catalogPageSize)
		if err != nil {
			return nil, fmt.Errorf("list services: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < catalogPageSize {
			return all, nil
		}
	}
}
