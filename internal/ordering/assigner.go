package ordering

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
)

var ErrNoProviders = errors.New("no active providers")

const providerPageSize = 100

// ProviderAssigner стратегия выбора мастера для заказа
type ProviderAssigner interface {
	Assign(ctx context.Context) (*model.Provider, error)
}

// UniformAssigner равновероятный выбор среди активных мастеров.
// Рейтинг и загрузка не учитываются
type UniformAssigner struct {
	catalog repository.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformAssigner src задаёт генератор, в тестах передаётся фиксированный seed
func NewUniformAssigner(catalog repository.Catalog, src rand.Source) *UniformAssigner {
	return &UniformAssigner{
		catalog: catalog,
		rng:     rand.New(src),
	}
}

func (a *UniformAssigner) Assign(ctx context.Context) (*model.Provider, error) {
	var providers []model.Provider
	for page := 0; ; page++ {
		batch, err := a.catalog.ListProviders(ctx, page, providerPageSize)
		if err != nil {
			return nil, fmt.Errorf("list providers: %w", err)
		}
		providers = append(providers, batch...)
		if len(batch) < providerPageSize {
			break
		}
	}

	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	a.mu.Lock()
	idx := a.rng.IntN(len(providers))
	a.mu.Unlock()

	p := providers[idx]
	return &p, nil
}
