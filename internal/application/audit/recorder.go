package audit

// Recorder emite entradas al log de acciones del sistema (fire-and-forget).
// Cualquier componente puede emitir; ninguno lee de vuelta. Un fallo al
// registrar nunca debe propagarse al caso de uso que lo emitió.
type Recorder interface {
	Record(userID *string, action, status, message string)
}

// Nop implementación vacía para tests y arranques sin base de datos.
type Nop struct{}

func (Nop) Record(userID *string, action, status, message string) {}
