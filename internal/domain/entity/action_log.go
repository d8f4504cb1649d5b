package entity

import "time"

// Estados de una entrada del log de acciones.
const (
	LogStatusSuccess = "SUCCESS"
	LogStatusError   = "ERROR"
	LogStatusWarning = "WARNING"
)

// ActionLog registra una acción o error notable del sistema.
// Es un sumidero de solo escritura: la lógica de negocio nunca lo lee.
type ActionLog struct {
	ID        string
	UserID    *string // nil cuando no hay actor autenticado
	Action    string
	Status    string
	Message   string
	CreatedAt time.Time
}
