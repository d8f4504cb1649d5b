package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/audit"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase aplica las reglas de negocio del catálogo de productos.
// La cantidad se fija aquí solo en la creación; después solo la modifica el
// coordinador de movimientos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	recorder     audit.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository, recorder audit.Recorder) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, movementRepo: movementRepo, recorder: recorder}
}

// validate aplica las reglas del formulario: nombre obligatorio y cantidad
// presente y no negativa.
func validate(in dto.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity == nil || *in.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create valida y persiste un nuevo producto con la cantidad inicial indicada.
func (uc *ProductUseCase) Create(userID string, in dto.ProductInput) (*dto.ProductResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Quantity:      *in.Quantity,
		Location:      in.Location,
		ImagePath:     in.ImagePath,
		DatasheetPath: in.DatasheetPath,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		uc.recorder.Record(&userID, "Crear Producto", entity.LogStatusError, err.Error())
		return nil, err
	}
	uc.recorder.Record(&userID, "Crear Producto", entity.LogStatusSuccess, fmt.Sprintf("producto %q creado", product.Name))
	return toResponse(product), nil
}

// Update valida y actualiza un producto existente. Los adjuntos solo se
// reemplazan si llega una ruta nueva; vacío conserva el existente.
func (uc *ProductUseCase) Update(userID, id string, in dto.ProductInput) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.Quantity = *in.Quantity
	product.Location = in.Location
	if in.ImagePath != "" {
		product.ImagePath = in.ImagePath
	}
	if in.DatasheetPath != "" {
		product.DatasheetPath = in.DatasheetPath
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		uc.recorder.Record(&userID, "Actualizar Producto", entity.LogStatusError, err.Error())
		return nil, err
	}
	uc.recorder.Record(&userID, "Actualizar Producto", entity.LogStatusSuccess, fmt.Sprintf("producto %q actualizado", product.Name))
	return toResponse(product), nil
}

// Delete elimina el producto y, en cascada, todo su historial de movimientos
// (pérdida asumida: queda rastro solo en el log de acciones).
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.productRepo.Delete(id); err != nil {
		uc.recorder.Record(&userID, "Eliminar Producto", entity.LogStatusError, err.Error())
		return err
	}
	uc.recorder.Record(&userID, "Eliminar Producto", entity.LogStatusSuccess,
		fmt.Sprintf("producto %q eliminado junto con sus movimientos", product.Name))
	return nil
}

// List devuelve los productos, filtrados por subcadena del nombre si se indica.
func (uc *ProductUseCase) List(nameFilter string) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

// Detail devuelve el producto con entradas, salidas y saldo calculados desde el
// libro de movimientos.
func (uc *ProductUseCase) Detail(id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	inbound, err := uc.movementRepo.SumByType(entity.MovementTypeIN, &id)
	if err != nil {
		return nil, err
	}
	outbound, err := uc.movementRepo.SumByType(entity.MovementTypeOUT, &id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		Product:  *toResponse(product),
		Inbound:  inbound,
		Outbound: outbound,
		Balance:  inbound - outbound,
	}, nil
}

func toResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Quantity:      p.Quantity,
		Location:      p.Location,
		ImagePath:     p.ImagePath,
		DatasheetPath: p.DatasheetPath,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
