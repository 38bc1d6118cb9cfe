package entity

import "time"

// User usuario de la API (autenticación por email/contraseña).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
