// Package memory implementa el puerto notify con un registro en memoria.
// No entrega nada: guarda los recordatorios programados, suficiente para
// desarrollo y tests. La entrega real (push) vendrá en otro adaptador.
package memory

import (
	"context"
	"errors"
	"sync"

	"pet-health-tracker/internal/ports/notify"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("reminder not found")

type Scheduler struct {
	mu    sync.RWMutex
	items map[string]notify.Reminder
}

func NewScheduler() *Scheduler {
	return &Scheduler{items: map[string]notify.Reminder{}}
}

func (s *Scheduler) Schedule(_ context.Context, r notify.Reminder) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.items[id] = r
	return id, nil
}

func (s *Scheduler) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Pending devuelve los recordatorios aún programados. Útil en tests.
func (s *Scheduler) Pending() []notify.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]notify.Reminder, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r)
	}
	return out
}
