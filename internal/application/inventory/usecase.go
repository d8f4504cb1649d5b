package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/audit"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementUseCase registra movimientos de stock de forma transaccional con bloqueo
// de fila (SELECT FOR UPDATE) y expone la lectura del libro de movimientos.
// Es el único camino por el que Product.Quantity cambia después de la creación.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	recorder     audit.Recorder
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, recorder audit.Recorder) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movementRepo: movementRepo, recorder: recorder}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	UserID    string
	ProductID string
	Type      string // IN u OUT
	Quantity  int64
}

// RegisterMovement valida la entrada, inicia una transacción, bloquea la fila del
// producto, aplica la suma o resta con la guarda de stock no negativo, persiste la
// nueva cantidad y agrega el movimiento al libro. Commit si todo ok, Rollback si
// algo falla: la cantidad nunca se actualiza sin su movimiento correspondiente.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	// Validar antes de tocar la persistencia
	if input.Type != entity.MovementTypeIN && input.Type != entity.MovementTypeOUT {
		return domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.UserID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto para serializar movimientos concurrentes
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQty := product.Quantity
		switch input.Type {
		case entity.MovementTypeIN:
			newQty += input.Quantity
		case entity.MovementTypeOUT:
			if input.Quantity > product.Quantity {
				return domain.ErrInsufficientStock
			}
			newQty -= input.Quantity
		}

		if err := productRepo.UpdateQuantity(input.ProductID, newQty); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:        uuid.New().String(),
			UserID:    input.UserID,
			ProductID: input.ProductID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			CreatedAt: now,
		}
		return movementRepo.Create(mov)
	})

	uc.audit(input, err)
	return err
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *MovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) error {
	return uc.RegisterMovement(ctx, MovementInput{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
	})
}

// ListMovements devuelve el libro completo ordenado por fecha ascendente.
func (uc *MovementUseCase) ListMovements() ([]dto.MovementResponse, error) {
	movements, err := uc.movementRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			UserID:    m.UserID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// Totals devuelve entradas, salidas y saldo de un producto recalculados desde el
// libro, independientes de la cantidad cacheada en products (verificación de
// consistencia).
func (uc *MovementUseCase) Totals(productID string) (inbound, outbound, balance int64, err error) {
	inbound, err = uc.movementRepo.SumByType(entity.MovementTypeIN, &productID)
	if err != nil {
		return 0, 0, 0, err
	}
	outbound, err = uc.movementRepo.SumByType(entity.MovementTypeOUT, &productID)
	if err != nil {
		return 0, 0, 0, err
	}
	return inbound, outbound, inbound - outbound, nil
}

// audit emite la entrada del log según el resultado. La validación simple no se
// registra; el rechazo de negocio queda como AVISO y los fallos como ERROR.
func (uc *MovementUseCase) audit(input MovementInput, err error) {
	userID := &input.UserID
	if input.UserID == "" {
		userID = nil
	}
	action := "Registrar Movimiento"
	switch {
	case err == nil:
		uc.recorder.Record(userID, action, entity.LogStatusSuccess,
			fmt.Sprintf("%s de %d unidades del producto %s", input.Type, input.Quantity, input.ProductID))
	case err == domain.ErrInsufficientStock:
		uc.recorder.Record(userID, action, entity.LogStatusWarning,
			fmt.Sprintf("stock insuficiente para salida de %d unidades del producto %s", input.Quantity, input.ProductID))
	case err == domain.ErrInvalidInput || err == domain.ErrNotFound:
		// rechazo de validación simple: sin entrada en el log
	default:
		uc.recorder.Record(userID, action, entity.LogStatusError, err.Error())
	}
}
