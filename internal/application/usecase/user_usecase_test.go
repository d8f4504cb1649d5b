package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/audit"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, email string, superuser bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta1"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsSuperuser:  superuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CuentaValida(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)

	resp, err := uc.Create(actor.ID, dto.CreateUserRequest{
		Username: "mgarcia",
		Email:    "mgarcia@almacen.local",
		Password: "secreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, "mgarcia", resp.Username)
	assert.False(t, resp.IsSuperuser)
	assert.Len(t, repo.users, 2)

	// El hash nunca viaja en la respuesta y no es la contraseña en claro.
	stored, err := repo.GetByID(resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreta1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta1")))
}

func TestCreate_UsernameDuplicadoNoCreaFila(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)
	seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)

	_, err := uc.Create(actor.ID, dto.CreateUserRequest{
		Username: "mgarcia",
		Email:    "otro@almacen.local",
		Password: "secreta1",
	})
	require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
	assert.Len(t, repo.users, 2, "el duplicado no debe dejar fila nueva")
}

func TestCreate_EmailDuplicadoRechazado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)
	seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)

	_, err := uc.Create(actor.ID, dto.CreateUserRequest{
		Username: "otro",
		Email:    "mgarcia@almacen.local",
		Password: "secreta1",
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, repo.users, 2)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)

	cases := []dto.CreateUserRequest{
		{Username: "", Email: "a@b.c", Password: "secreta1"},
		{Username: "user", Email: "", Password: "secreta1"},
		{Username: "user", Email: "sin-arroba", Password: "secreta1"},
		{Username: "user", Email: "a@b.c", Password: "corta"},
	}
	for _, in := range cases {
		_, err := uc.Create(actor.ID, in)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Len(t, repo.users, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_DuplicadoExcluyeLaPropiaCuenta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)
	target := seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)
	seedUser(t, repo, "jperez", "jperez@almacen.local", false)

	// Conservar el propio username no es un duplicado
	resp, err := uc.Update(actor.ID, target.ID, dto.UpdateUserRequest{
		Username: "mgarcia",
		Email:    "mgarcia@almacen.local",
	})
	require.NoError(t, err)
	assert.Equal(t, "mgarcia", resp.Username)

	// Tomar el username de otra cuenta sí lo es
	_, err = uc.Update(actor.ID, target.ID, dto.UpdateUserRequest{
		Username: "jperez",
		Email:    "mgarcia@almacen.local",
	})
	require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestUpdate_ContrasenaVaciaConservaElHash(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)
	target := seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)
	originalHash := target.PasswordHash

	_, err := uc.Update(actor.ID, target.ID, dto.UpdateUserRequest{
		Username: "mgarcia",
		Email:    "nuevo@almacen.local",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(target.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.PasswordHash)
	assert.Equal(t, "nuevo@almacen.local", stored.Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_CuentaExistenteEInexistente(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	user := seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)

	resp, err := uc.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "mgarcia", resp.Username)
	assert.Equal(t, "mgarcia@almacen.local", resp.Email)

	_, err = uc.GetByID(uuid.New().String())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RequiereActorSuperusuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)
	target := seedUser(t, repo, "jperez", "jperez@almacen.local", false)

	err := uc.Delete(actor.ID, target.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, repo.users, 2)
}

func TestDelete_CuentaSuperusuarioNoEsBorrable(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)
	otherAdmin := seedUser(t, repo, "root", "root@almacen.local", true)

	err := uc.Delete(actor.ID, otherAdmin.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Tampoco puede borrarse a sí mismo
	err = uc.Delete(actor.ID, actor.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	assert.Len(t, repo.users, 2)
}

func TestDelete_CuentaRegularPorSuperusuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo, audit.Nop{})
	actor := seedUser(t, repo, "admin", "admin@almacen.local", true)
	target := seedUser(t, repo, "mgarcia", "mgarcia@almacen.local", false)

	require.NoError(t, uc.Delete(actor.ID, target.ID))
	assert.Len(t, repo.users, 1)

	err := uc.Delete(actor.ID, target.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
