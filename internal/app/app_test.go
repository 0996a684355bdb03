package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/config"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/repository/memory"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	values := map[string]string{
		"TELEGRAM_TOKEN": "token",
		"STORAGE":        "memory",
		"ADMIN_IDS":      "42",
	}
	cfg, err := config.FromEnv(func(key string) string { return values[key] })
	require.NoError(t, err)
	return cfg
}

func TestNewCoreWiresOrdering(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig(t)
	core := NewCore(cfg, memory.NewSeeded().Store(), nil, nil, zap.NewNop())

	deps := core.Deps
	require.NotNil(t, deps.Ordering)
	assert.Equal(t, cfg.Location, deps.Location)
	assert.True(t, deps.AdminService.IsAdmin(42))
	assert.False(t, deps.AdminService.IsAdmin(7))
	assert.False(t, core.Advice.Configured())

	_, err := deps.UserService.Register(ctx, 7, "Анна", "+79001234567", "г. Москва, ул. Ленина, 1")
	require.NoError(t, err)

	reply, err := deps.Ordering.BeginOrder(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, ordering.StateSelectingServices, reply.State)
	assert.NotNil(t, core.Sessions.Draft(7))
	assert.Equal(t, 1, core.Sessions.Len())

	reply, err = deps.Ordering.CancelOrder(ctx, 7)
	require.NoError(t, err)
	assert.True(t, reply.Cancelled)
	assert.Nil(t, core.Sessions.Draft(7))
}

func TestNewCoreHistoryIsEmpty(t *testing.T) {
	cfg := memoryConfig(t)
	core := NewCore(cfg, memory.NewSeeded().Store(), nil, nil, zap.NewNop())

	page, err := core.Deps.OrderService.History(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Orders)
}

func TestAdviceProviderRequiresKey(t *testing.T) {
	cfg := memoryConfig(t)
	assert.Nil(t, newAdviceProvider(context.Background(), cfg, zap.NewNop()))
}
