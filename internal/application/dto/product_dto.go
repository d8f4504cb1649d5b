package dto

import "time"

// ProductInput campos del formulario de creación/edición de producto.
// Los adjuntos (imagen, datasheet) llegan por multipart y se resuelven en el handler.
type ProductInput struct {
	Name          string `json:"name" form:"name"`
	Description   string `json:"description" form:"description"`
	Quantity      *int64 `json:"quantity" form:"quantity"` // nil = no informada
	Location      string `json:"location" form:"location"`
	ImagePath     string `json:"-" form:"-"`
	DatasheetPath string `json:"-" form:"-"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Quantity      int64     `json:"quantity"`
	Location      string    `json:"location,omitempty"`
	ImagePath     string    `json:"image_path,omitempty"`
	DatasheetPath string    `json:"datasheet_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductDetailResponse producto más totales de entradas/salidas y saldo.
type ProductDetailResponse struct {
	Product  ProductResponse `json:"product"`
	Inbound  int64           `json:"inbound"`
	Outbound int64           `json:"outbound"`
	Balance  int64           `json:"balance"`
}
