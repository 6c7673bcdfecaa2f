// Package notify define el puerto de programación de recordatorios.
// El dominio calcula los instantes de disparo; la entrega concreta
// (push local, cola, etc.) queda del lado del adaptador.
package notify

import (
	"context"
	"time"
)

// Reminder es una notificación programada para un instante concreto.
type Reminder struct {
	Title     string
	Body      string
	TriggerAt time.Time
}

// Scheduler programa y cancela recordatorios.
type Scheduler interface {
	// Schedule registra el recordatorio y devuelve un identificador
	// con el que cancelarlo más tarde.
	Schedule(ctx context.Context, r Reminder) (string, error)
	Cancel(ctx context.Context, id string) error
}
