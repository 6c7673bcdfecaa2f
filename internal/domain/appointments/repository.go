package appointments

import "context"

// Repository persiste citas.
type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Appointment, error)
	Delete(ctx context.Context, id string) error
}
