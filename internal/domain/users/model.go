package users

import "time"

// User es una cuenta de la aplicación. PasswordHash nunca sale por la API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
