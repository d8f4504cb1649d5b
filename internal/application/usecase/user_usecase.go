package usecase

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
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen longitud mínima de contraseña.
const MinPasswordLen = 6

// UserUseCase aplica reglas de negocio para cuentas de usuario: altas con chequeo
// de duplicados, edición, borrado con guarda de privilegios y listado.
type UserUseCase struct {
	repo     repository.UserRepository
	recorder audit.Recorder
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, recorder audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, recorder: recorder}
}

// Create crea una cuenta: rechaza username/email duplicados, exige contraseña
// mínima y hashea con bcrypt antes de persistir.
func (uc *UserUseCase) Create(actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < MinPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByUsername(username); existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}
	if existing, _ := uc.repo.GetByEmail(email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		uc.recorder.Record(&actorID, "Crear Usuario", entity.LogStatusError, err.Error())
		return nil, err
	}
	uc.recorder.Record(&actorID, "Crear Usuario", entity.LogStatusSuccess, fmt.Sprintf("usuario %q creado", username))
	return ToUserResponse(user), nil
}

// Update edita una cuenta: mismos chequeos de duplicados excluyendo la propia,
// cambio de contraseña opcional (vacía = conservar).
func (uc *UserUseCase) Update(actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidInput
	}
	if other, _ := uc.repo.GetByUsername(username); other != nil && other.ID != user.ID {
		return nil, domain.ErrUsernameAlreadyExists
	}
	if other, _ := uc.repo.GetByEmail(email); other != nil && other.ID != user.ID {
		return nil, domain.ErrEmailAlreadyExists
	}
	user.Username = username
	user.Email = email
	if in.Password != "" {
		if len(in.Password) < MinPasswordLen {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		uc.recorder.Record(&actorID, "Actualizar Usuario", entity.LogStatusError, err.Error())
		return nil, err
	}
	uc.recorder.Record(&actorID, "Actualizar Usuario", entity.LogStatusSuccess, fmt.Sprintf("usuario %q actualizado", username))
	return ToUserResponse(user), nil
}

// Delete elimina una cuenta. Solo actores superusuario pueden borrar, y las
// cuentas superusuario no son borrables (cubre a la cuenta administrativa).
func (uc *UserUseCase) Delete(actorID, id string) error {
	actor, err := uc.repo.GetByID(actorID)
	if err != nil {
		return err
	}
	if actor == nil || !actor.IsSuperuser {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.IsSuperuser {
		uc.recorder.Record(&actorID, "Eliminar Usuario", entity.LogStatusWarning,
			fmt.Sprintf("intento de eliminar la cuenta superusuario %q", user.Username))
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(id); err != nil {
		uc.recorder.Record(&actorID, "Eliminar Usuario", entity.LogStatusError, err.Error())
		return err
	}
	uc.recorder.Record(&actorID, "Eliminar Usuario", entity.LogStatusSuccess, fmt.Sprintf("usuario %q eliminado", user.Username))
	return nil
}

// List devuelve todas las cuentas.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene una cuenta por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ToUserResponse convierte la entidad a su representación pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
