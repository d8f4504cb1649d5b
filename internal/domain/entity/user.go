package entity

import "time"

// User representa una cuenta del personal del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
