package care

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]Event, error)
}

// ListFilter filtra el historial. Limit <= 0 significa sin límite: el
// motor de salud necesita el historial completo para elegir el registro
// autoritativo por obligación.
type ListFilter struct {
	Kinds []Kind
	From  *time.Time
	To    *time.Time
	Limit int
}
