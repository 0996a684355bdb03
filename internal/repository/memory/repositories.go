package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/repair_bot/internal/model"
)

type Catalog struct {
	db *DB
}

func (c *Catalog) ListServices(_ context.Context, pageNum, size int) ([]model.Service, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	if pageNum < 0 {
		pageNum = 0
	}
	var out []model.Service
	for _, id := range page(c.db.sortedServiceIDs(), size, pageNum*size) {
		out = append(out, *c.db.services[id])
	}
	return out, nil
}

func (c *Catalog) CountServices(_ context.Context) (int, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	return len(c.db.sortedServiceIDs()), nil
}

func (c *Catalog) GetService(_ context.Context, id int64) (*model.Service, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	s, ok := c.db.activeService(id)
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (c *Catalog) ListProviders(_ context.Context, pageNum, size int) ([]model.Provider, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	if pageNum < 0 {
		pageNum = 0
	}
	var out []model.Provider
	for _, id := range page(c.db.sortedProviderIDs(), size, pageNum*size) {
		out = append(out, *c.db.providers[id])
	}
	return out, nil
}

func (c *Catalog) GetProvider(_ context.Context, id int64) (*model.Provider, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	p, ok := c.db.providers[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	out := *p
	return &out, nil
}

type Orders struct {
	db *DB
}

// CreateOrder сначала проверяет все услуги и мастера, и только потом пишет
func (r *Orders) CreateOrder(_ context.Context, order model.NewOrder) (int64, error) {
	if len(order.ServiceIDs) == 0 {
		return 0, model.ErrEmptyOrder
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if p, ok := r.db.providers[order.ProviderID]; !ok || !p.IsActive {
		return 0, fmt.Errorf("create order: provider %d: %w", order.ProviderID, model.ErrNotFound)
	}
	for _, id := range order.ServiceIDs {
		if _, ok := r.db.activeService(id); !ok {
			return 0, fmt.Errorf("create order: service %d: %w", id, model.ErrServiceUnavailable)
		}
	}

	r.db.nextOrderID++
	id := r.db.nextOrderID
	r.db.orders[id] = &model.Order{
		ID:         id,
		UserID:     order.UserID,
		ProviderID: order.ProviderID,
		Address:    order.Address,
		Date:       order.Date,
		TimeSlot:   order.TimeSlot,
		TotalCost:  order.TotalCost,
		Status:     model.OrderStatusPending,
		CreatedAt:  r.db.now(),
	}
	for _, serviceID := range order.ServiceIDs {
		r.db.links = append(r.db.links, model.OrderServiceLink{OrderID: id, ServiceID: serviceID})
	}

	return id, nil
}

func (r *Orders) GetOrder(_ context.Context, id int64) (*model.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	o, ok := r.db.orders[id]
	if !ok {
		return nil, nil
	}
	out := r.db.orderCopy(o, true)
	return &out, nil
}

func (r *Orders) SetOrderStatus(_ context.Context, id int64, status model.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, model.ErrInvalidStatus
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	o, ok := r.db.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (r *Orders) ListOrdersForUser(_ context.Context, userID int64, limit, offset int) ([]model.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	all := r.db.sortedOrders(func(o *model.Order) bool { return o.UserID == userID })
	var out []model.Order
	for _, o := range page(all, limit, offset) {
		out = append(out, r.db.orderCopy(o, false))
	}
	return out, nil
}

func (r *Orders) CountOrdersForUser(_ context.Context, userID int64) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for _, o := range r.db.orders {
		if o.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *Orders) ListOrders(_ context.Context, limit, offset int) ([]model.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []model.Order
	for _, o := range page(r.db.sortedOrders(nil), limit, offset) {
		out = append(out, r.db.orderCopy(o, false))
	}
	return out, nil
}

func (r *Orders) OrderServiceIDs(_ context.Context, orderID int64) ([]int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var ids []int64
	for _, l := range r.db.links {
		if l.OrderID == orderID {
			ids = append(ids, l.ServiceID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type Users struct {
	db *DB
}

func (r *Users) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[telegramID]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *Users) Upsert(_ context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if existing, ok := r.db.users[user.TelegramID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = r.db.now()
	}
	stored := *user
	r.db.users[user.TelegramID] = &stored
	return nil
}

func (r *Users) UpdateField(_ context.Context, telegramID int64, field model.ProfileField, value string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[telegramID]
	if !ok {
		return false, nil
	}
	switch field {
	case model.ProfileFieldName:
		u.Name = value
	case model.ProfileFieldPhone:
		u.Phone = value
	case model.ProfileFieldAddress:
		u.Address = value
	default:
		return false, fmt.Errorf("unknown profile field %q", field)
	}
	return true, nil
}

type Reviews struct {
	db *DB
}

func (r *Reviews) Create(_ context.Context, review *model.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	o, ok := r.db.orders[review.OrderID]
	if !ok || o.UserID != review.UserID {
		return fmt.Errorf("create review: %w", model.ErrNotFound)
	}
	if !o.Status.CanBeReviewed() {
		return fmt.Errorf("create review: %w", model.ErrInvalidStatus)
	}
	for _, existing := range r.db.reviews {
		if existing.OrderID == review.OrderID {
			return fmt.Errorf("create review: %w", model.ErrAlreadyReviewed)
		}
	}

	r.db.nextReviewID++
	review.ID = r.db.nextReviewID
	review.CreatedAt = r.db.now()
	r.db.reviews = append(r.db.reviews, *review)
	return nil
}

func (r *Reviews) Recent(_ context.Context, limit int) ([]model.Review, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Review, 0, limit)
	for i := len(r.db.reviews) - 1; i >= 0 && len(out) < limit; i-- {
		rv := r.db.reviews[i]
		if u, ok := r.db.users[rv.UserID]; ok {
			rv.UserName = u.Name
		}
		out = append(out, rv)
	}
	return out, nil
}

type Support struct {
	db *DB
}

func (r *Support) Create(_ context.Context, request *model.SupportRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextSupportID++
	request.ID = r.db.nextSupportID
	request.CreatedAt = r.db.now()
	r.db.support = append(r.db.support, *request)
	return nil
}

func (r *Support) Recent(_ context.Context, limit int) ([]model.SupportRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.SupportRequest, 0, limit)
	for i := len(r.db.support) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.db.support[i])
	}
	return out, nil
}

type Stats struct {
	db *DB
}

func (r *Stats) Statistics(_ context.Context) (*model.Statistics, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	st := &model.Statistics{
		Users:           len(r.db.users),
		Orders:          len(r.db.orders),
		Reviews:         len(r.db.reviews),
		SupportRequests: len(r.db.support),
	}
	for _, o := range r.db.orders {
		switch {
		case o.Status.IsActive():
			st.ActiveOrders++
		case o.Status == model.OrderStatusCompleted:
			st.CompletedOrders++
			st.Revenue += o.TotalCost
		case o.Status == model.OrderStatusCancelled:
			st.CancelledOrders++
		}
	}
	if len(r.db.reviews) > 0 {
		sum := 0
		for _, rv := range r.db.reviews {
			sum += rv.Rating
		}
		st.AverageRating = float64(sum) / float64(len(r.db.reviews))
	}
	return st, nil
}
