package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "github.com/Freeeeeet/repair_bot"

// Recorder счётчики бота. Нулевой указатель безопасен, вызовы ничего не делают
type Recorder struct {
	recommendations metric.Int64Counter
	committed       metric.Int64Counter
	rejections      metric.Int64Counter
	events          metric.Int64Counter
	throttled       metric.Int64Counter
}

// New регистрирует счётчики в meter. Если meter nil, берётся глобальный провайдер
func New(meter metric.Meter, logger *zap.Logger) *Recorder {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Recorder{}
	var err error

	r.recommendations, err = meter.Int64Counter(
		"repair.recommendations",
		metric.WithDescription("Recommendations served, by path (advice or fallback)"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register recommendations counter", zap.Error(err))
	}

	r.committed, err = meter.Int64Counter(
		"repair.orders.committed",
		metric.WithDescription("Orders committed to the repository"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register committed counter", zap.Error(err))
	}

	r.rejections, err = meter.Int64Counter(
		"repair.orders.rejections",
		metric.WithDescription("Rejected order assembly events, by kind"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register rejections counter", zap.Error(err))
	}

	r.events, err = meter.Int64Counter(
		"repair.orders.events",
		metric.WithDescription("Order assembly events handled, by event type"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register events counter", zap.Error(err))
	}

	r.throttled, err = meter.Int64Counter(
		"repair.updates.throttled",
		metric.WithDescription("Updates dropped by the per-user rate limit"),
	)
	if err != nil {
		logger.Warn("metrics: unable to register throttled counter", zap.Error(err))
	}

	return r
}

func (r *Recorder) RecommendationServed(ctx context.Context, path string) {
	if r == nil || r.recommendations == nil {
		return
	}
	r.recommendations.Add(ctx, 1, metric.WithAttributes(attribute.String("path", path)))
}

func (r *Recorder) OrderCommitted(ctx context.Context) {
	if r == nil || r.committed == nil {
		return
	}
	r.committed.Add(ctx, 1)
}

func (r *Recorder) EventRejected(ctx context.Context, kind string) {
	if r == nil || r.rejections == nil {
		return
	}
	r.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (r *Recorder) EventHandled(ctx context.Context, event string) {
	if r == nil || r.events == nil {
		return
	}
	r.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
}

func (r *Recorder) UpdateThrottled(ctx context.Context) {
	if r == nil || r.throttled == nil {
		return
	}
	r.throttled.Add(ctx, 1)
}
