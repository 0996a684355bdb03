package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval как часто чистятся истёкшие сессии и лимитеры
const DefaultSweepInterval = time.Minute

// Sweeper удаляет устаревшие записи и возвращает их количество
type Sweeper interface {
	Sweep() int
}

type sweepTask struct {
	name    string
	sweeper Sweeper
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	tasks    []sweepTask
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler создаёт новый планировщик
func NewScheduler(interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Scheduler{
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Add регистрирует задачу очистки. Вызывать до Run
func (s *Scheduler) Add(name string, sweeper Sweeper) {
	s.tasks = append(s.tasks, sweepTask{name: name, sweeper: sweeper})
}

// Run выполняет задачи по таймеру, блокируется до Stop или отмены ctx
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			s.logger.Info("Background scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Background scheduler cancelled")
			return
		}
	}
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Scheduler) sweep() {
	for _, t := range s.tasks {
		if removed := t.sweeper.Sweep(); removed > 0 {
			s.logger.Debug("Sweep completed",
				zap.String("task", t.name),
				zap.Int("removed", removed))
		}
	}
}
