package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-health-tracker/internal/domain/care"
)

type careRepo struct {
	mu   sync.RWMutex
	byID map[string]care.Event
}

func NewCareRepo() care.Repository {
	return &careRepo{
		byID: make(map[string]care.Event),
	}
}

func (r *careRepo) Create(ctx context.Context, e care.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *careRepo) GetByID(ctx context.Context, id string) (care.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return care.Event{}, ErrNotFound
	}
	return e, nil
}

func (r *careRepo) ListByAnimal(ctx context.Context, animalID string, filter care.ListFilter) ([]care.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]care.Event, 0)

	for _, e := range r.byID {
		if e.AnimalID != animalID {
			continue
		}

		if len(filter.Kinds) > 0 {
			ok := false
			for _, k := range filter.Kinds {
				if e.Kind == k {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.From != nil {
			if e.Date.Before((*filter.From).Add(-1 * time.Nanosecond)) {
				continue
			}
		}
		if filter.To != nil {
			if e.Date.After(*filter.To) {
				continue
			}
		}

		out = append(out, e)
	}

	// Orden por date desc (más reciente primero); empates por recorded_at
	// para que el resultado sea determinista.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})

	// Limit <= 0 significa sin límite: el informe de salud necesita el
	// historial completo.
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}
