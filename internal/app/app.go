package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Freeeeeet/repair_bot/internal/config"
	"github.com/Freeeeeet/repair_bot/internal/controller"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/metrics"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/recommendation"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/repository/memory"
	"github.com/Freeeeeet/repair_bot/internal/service"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

const shutdownTimeout = 5 * time.Second

// Core доменные сервисы без транспорта
type Core struct {
	Deps     *callbacktypes.Handler
	Advice   *recommendation.Adapter
	Sessions *state.Manager
}

// NewCore собирает сервисы поверх хранилища. provider может быть nil
func NewCore(
	cfg *config.Config,
	store *repository.Store,
	provider recommendation.AdviceProvider,
	rec *metrics.Recorder,
	logger *zap.Logger,
) *Core {
	now := func() time.Time { return time.Now().In(cfg.Location) }

	sessions := state.NewManager(cfg.SessionTTL)
	advice := recommendation.NewAdapter(provider, logger.Named("advice"), rec)
	users := service.NewUserService(store.Users, logger)

	assigner := ordering.NewUniformAssigner(store.Catalog, rand.NewPCG(rand.Uint64(), rand.Uint64()))
	machine := ordering.NewMachine(store.Catalog, store.Orders, users, assigner, ordering.Config{
		MaxServices: cfg.MaxServicesPerOrder,
		PageSize:    cfg.ServicesPageSize,
		Window: validation.Window{
			OfferDays:  cfg.DateOfferDays,
			AcceptDays: cfg.DateAcceptDays,
		},
	}, logger.Named("ordering"), rec)
	machine.SetClock(now)

	ord := ordering.NewService(machine, store.Catalog, sessions, advice, logger.Named("ordering"))
	orders := service.NewOrderService(store.Orders, ord, service.DefaultHistoryPageSize, logger)

	deps := &callbacktypes.Handler{
		Ordering:       ord,
		UserService:    users,
		OrderService:   orders,
		ReviewService:  service.NewReviewService(store.Reviews, orders, logger),
		SupportService: service.NewSupportService(store.Support, logger),
		AdminService:   service.NewAdminService(cfg.AdminIDs, store.Stats, advice, logger),
		StateManager:   sessions,
		Location:       cfg.Location,
		Logger:         logger.Named("controller"),
	}

	return &Core{Deps: deps, Advice: advice, Sessions: sessions}
}

// App бот целиком: хранилище, сервисы, транспорт и фоновые задачи
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	pool      *pgxpool.Pool
	core      *Core
	limiter   *controller.RateLimiter
	scheduler *Scheduler
	bot       *controller.BotController
	health    *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	store, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	rec := metrics.New(nil, logger)
	a.core = NewCore(cfg, store, newAdviceProvider(ctx, cfg, logger), rec, logger)

	a.limiter = controller.NewRateLimiter(cfg.RateLimitMessages, cfg.RateLimitWindow, rec, logger.Named("ratelimit"))

	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(a.limiter.Middleware),
		bot.WithDefaultHandler(controller.DefaultHandler(a.core.Deps)),
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram polling error", zap.Error(err))
		}),
	)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("create bot: %w", err), a.Close())
	}
	a.bot = controller.NewBotController(b, a.core.Deps)

	a.scheduler = NewScheduler(DefaultSweepInterval, logger.Named("scheduler"))
	a.scheduler.Add("sessions", a.core.Sessions)
	a.scheduler.Add("rate_limits", a.limiter)

	if cfg.HTTPAddr != "" {
		var db Pinger
		if a.pool != nil {
			db = a.pool
		}
		handler := NewHealthHandler(cfg.Storage, db, a.core.Sessions.Len, a.core.Advice, logger.Named("health"))
		a.health = NewHealthServer(cfg.HTTPAddr, handler)
	}

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (*repository.Store, error) {
	if a.cfg.Storage == config.StorageMemory {
		a.logger.Warn("Using in-memory storage, data is lost on restart")
		db := memory.NewSeeded()
		db.SetClock(func() time.Time { return time.Now().In(a.cfg.Location) })
		return db.Store(), nil
	}

	pool, err := ConnectDB(ctx, a.cfg.DBDSN, a.logger)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	if a.cfg.MigrationsEnabled {
		mg, err := NewMigrator(pool, a.logger.Named("migrator"))
		if err != nil {
			return nil, multierr.Append(err, a.Close())
		}
		if err := multierr.Append(mg.Run(ctx), mg.Close()); err != nil {
			return nil, multierr.Append(err, a.Close())
		}
	}

	return repository.NewStore(pool), nil
}

func newAdviceProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) recommendation.AdviceProvider {
	if cfg.GeminiAPIKey == "" {
		logger.Info("Advice provider is not configured, keyword rules only")
		return nil
	}

	provider, err := recommendation.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AdviceTimeout)
	if err != nil {
		logger.Warn("Advice provider unavailable, keyword rules only", zap.Error(err))
		return nil
	}
	return provider
}

// Run запускает бота, фоновые задачи и HTTP ручки. Возвращается после отмены ctx
func (a *App) Run(ctx context.Context) error {
	if err := a.bot.RegisterHandlers(ctx); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.bot.Start(gctx)
	})

	g.Go(func() error {
		a.scheduler.Run(gctx)
		return nil
	})

	if a.health != nil {
		g.Go(func() error {
			a.logger.Info("Health server listening", zap.String("addr", a.health.Addr))
			if err := a.health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return a.health.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// Close освобождает ресурсы. Безопасен после неудачного New
func (a *App) Close() error {
	var err error
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.health != nil {
		err = multierr.Append(err, a.health.Close())
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	return err
}
