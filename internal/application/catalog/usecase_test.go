package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/audit"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List(nameFilter string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if nameFilter != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(nameFilter)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListAll() ([]*entity.Movement, error) {
	return append([]*entity.Movement(nil), r.movements...), nil
}

func (r *fakeMovementRepo) SumByType(movType string, productID *string) (int64, error) {
	var total int64
	for _, m := range r.movements {
		if m.Type != movType {
			continue
		}
		if productID != nil && m.ProductID != *productID {
			continue
		}
		total += m.Quantity
	}
	return total, nil
}

func qty(n int64) *int64 { return &n }

const testUserID = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ProductoValido(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, &fakeMovementRepo{}, audit.Nop{})

	resp, err := uc.Create(testUserID, dto.ProductInput{
		Name:     "  Arduino Nano ",
		Quantity: qty(0),
		Location: "Estante B3",
	})
	require.NoError(t, err)
	assert.Equal(t, "Arduino Nano", resp.Name, "el nombre se guarda sin espacios laterales")
	assert.Equal(t, int64(0), resp.Quantity)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, repo.products, 1)
}

func TestCreate_NombreVacioRechazado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, &fakeMovementRepo{}, audit.Nop{})

	for _, name := range []string{"", "   "} {
		_, err := uc.Create(testUserID, dto.ProductInput{Name: name, Quantity: qty(1)})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, repo.products)
}

func TestCreate_CantidadFaltanteONegativaRechazada(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, &fakeMovementRepo{}, audit.Nop{})

	_, err := uc.Create(testUserID, dto.ProductInput{Name: "Sensor"})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad ausente")

	_, err = uc.Create(testUserID, dto.ProductInput{Name: "Sensor", Quantity: qty(-1)})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa")

	assert.Empty(t, repo.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo(), &fakeMovementRepo{}, audit.Nop{})

	_, err := uc.Update(testUserID, uuid.New().String(), dto.ProductInput{Name: "X", Quantity: qty(1)})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin adjunto nuevo, los adjuntos existentes se conservan; con adjunto nuevo se
// reemplazan.
func TestUpdate_AdjuntosSoloSeReemplazanConArchivoNuevo(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, &fakeMovementRepo{}, audit.Nop{})

	created, err := uc.Create(testUserID, dto.ProductInput{
		Name:          "Fuente 12V",
		Quantity:      qty(3),
		ImagePath:     "media/images/original.png",
		DatasheetPath: "media/datasheets/original.pdf",
	})
	require.NoError(t, err)

	// Edición sin archivos nuevos
	updated, err := uc.Update(testUserID, created.ID, dto.ProductInput{
		Name: "Fuente 12V 2A", Quantity: qty(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "media/images/original.png", updated.ImagePath)
	assert.Equal(t, "media/datasheets/original.pdf", updated.DatasheetPath)

	// Edición con imagen nueva: solo la imagen cambia
	updated, err = uc.Update(testUserID, created.ID, dto.ProductInput{
		Name: "Fuente 12V 2A", Quantity: qty(3), ImagePath: "media/images/nueva.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "media/images/nueva.png", updated.ImagePath)
	assert.Equal(t, "media/datasheets/original.pdf", updated.DatasheetPath)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y detalle
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltroPorNombreSinMayusculas(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, &fakeMovementRepo{}, audit.Nop{})

	for _, name := range []string{"Resistencia 10k", "Capacitor 100nF", "resistencia 1k"} {
		_, err := uc.Create(testUserID, dto.ProductInput{Name: name, Quantity: qty(0)})
		require.NoError(t, err)
	}

	list, err := uc.List("RESIST")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDetail_TotalesDelProducto(t *testing.T) {
	repo := newFakeProductRepo()
	movRepo := &fakeMovementRepo{}
	uc := NewProductUseCase(repo, movRepo, audit.Nop{})

	created, err := uc.Create(testUserID, dto.ProductInput{Name: "Regulador", Quantity: qty(0)})
	require.NoError(t, err)

	now := time.Now()
	for _, m := range []entity.Movement{
		{ID: uuid.New().String(), UserID: testUserID, ProductID: created.ID, Type: entity.MovementTypeIN, Quantity: 12, CreatedAt: now},
		{ID: uuid.New().String(), UserID: testUserID, ProductID: created.ID, Type: entity.MovementTypeOUT, Quantity: 4, CreatedAt: now},
		{ID: uuid.New().String(), UserID: testUserID, ProductID: "otro-producto", Type: entity.MovementTypeIN, Quantity: 99, CreatedAt: now},
	} {
		mv := m
		require.NoError(t, movRepo.Create(&mv))
	}

	detail, err := uc.Detail(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), detail.Inbound, "los totales no deben mezclar otros productos")
	assert.Equal(t, int64(4), detail.Outbound)
	assert.Equal(t, int64(8), detail.Balance)
}

func TestDelete_ProductoInexistente(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo(), &fakeMovementRepo{}, audit.Nop{})
	err := uc.Delete(testUserID, uuid.New().String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
