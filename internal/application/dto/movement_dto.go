package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" form:"product_id"`
	Type      string `json:"type" form:"type"` // IN u OUT
	Quantity  int64  `json:"quantity" form:"quantity"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
