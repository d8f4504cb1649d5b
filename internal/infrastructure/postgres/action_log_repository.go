package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/audit"
	"github.com/rs/zerolog"
)

var _ audit.Recorder = (*ActionLogRepo)(nil)

// ActionLogRepo sumidero de solo escritura sobre la tabla action_logs.
// Implementa audit.Recorder: un fallo del insert se registra en el logger y se
// descarta, nunca interrumpe la operación que lo emitió.
type ActionLogRepo struct {
	q   Querier
	log zerolog.Logger
}

// NewActionLogRepository construye el sumidero del log de acciones.
func NewActionLogRepository(q Querier, log zerolog.Logger) *ActionLogRepo {
	return &ActionLogRepo{q: q, log: log}
}

// Record inserta la entrada (fire-and-forget).
func (r *ActionLogRepo) Record(userID *string, action, status, message string) {
	query := `
		INSERT INTO action_logs (id, user_id, action, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		uuid.New().String(), userID, action, status, message, time.Now(),
	)
	if err != nil {
		r.log.Error().Err(err).Str("action", action).Msg("no se pudo registrar la entrada del log de acciones")
	}
}
