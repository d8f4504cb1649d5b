package auth

import (
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/audit"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	ResetExpMinutes int
	Issuer          string
}

// AuthUseCase casos de uso de autenticación: login y restablecimiento de
// contraseña en dos pasos (token firmado y acotado en el tiempo, enviado por correo).
type AuthUseCase struct {
	userRepo repository.UserRepository
	mail     MailSender
	recorder audit.Recorder
	jwtCfg   JWTConfig
	// ResetBaseURL prefijo del enlace de restablecimiento (ej. https://app/reset-password).
	ResetBaseURL string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mail MailSender, recorder audit.Recorder, jwtCfg JWTConfig, resetBaseURL string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mail: mail, recorder: recorder, jwtCfg: jwtCfg, ResetBaseURL: resetBaseURL}
}

// Login verifica username/password, genera JWT de sesión y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.recorder.Record(nil, "Login", entity.LogStatusWarning, fmt.Sprintf("credenciales incorrectas para %q", in.Username))
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.IsSuperuser, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(&user.ID, "Login", entity.LogStatusSuccess, fmt.Sprintf("sesión iniciada por %q", user.Username))
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// RequestPasswordReset emite el enlace de restablecimiento para el email dado.
// El resultado hacia el cliente es siempre neutro: no revela si la cuenta existe.
func (uc *AuthUseCase) RequestPasswordReset(in dto.ResetRequest) error {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token, err := jwt.GenerateReset(uc.jwtCfg.Secret, user.ID, hashFingerprint(user.PasswordHash), uc.jwtCfg.Issuer, uc.jwtCfg.ResetExpMinutes)
	if err != nil {
		return err
	}
	resetLink := fmt.Sprintf("%s?token=%s", uc.ResetBaseURL, token)
	if err := uc.mail.SendPasswordReset(user.Email, user.Username, resetLink); err != nil {
		uc.recorder.Record(&user.ID, "Pedido Reset Contraseña", entity.LogStatusError, err.Error())
		return err
	}
	uc.recorder.Record(&user.ID, "Pedido Reset Contraseña", entity.LogStatusSuccess,
		fmt.Sprintf("enlace de restablecimiento enviado a %s", user.Email))
	return nil
}

// ConfirmPasswordReset valida el token (firma, expiración, propósito y huella del
// hash vigente), exige contraseñas coincidentes y longitud mínima, y guarda el
// nuevo hash. La huella hace que el token sea de un solo uso en la práctica.
func (uc *AuthUseCase) ConfirmPasswordReset(in dto.ResetConfirmRequest) error {
	userID, fpr, err := jwt.ParseReset(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || fpr != hashFingerprint(user.PasswordHash) {
		return domain.ErrInvalidResetToken
	}
	if in.Password != in.Password2 {
		return domain.ErrInvalidInput
	}
	if len(in.Password) < usecase.MinPasswordLen {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		uc.recorder.Record(&user.ID, "Reset Contraseña", entity.LogStatusError, err.Error())
		return err
	}
	uc.recorder.Record(&user.ID, "Reset Contraseña", entity.LogStatusSuccess,
		fmt.Sprintf("contraseña restablecida para %q", user.Username))
	return nil
}

// hashFingerprint devuelve la cola del hash bcrypt como huella del estado de la
// credencial. Suficiente para invalidar tokens tras un cambio de contraseña.
func hashFingerprint(passwordHash string) string {
	if len(passwordHash) <= 12 {
		return passwordHash
	}
	return passwordHash[len(passwordHash)-12:]
}
