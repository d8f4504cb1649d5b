package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse token de sesión más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ResetRequest solicitud de restablecimiento de contraseña (paso 1).
type ResetRequest struct {
	Email string `json:"email" form:"email"`
}

// ResetConfirmRequest confirmación con token firmado y nueva contraseña (paso 2).
type ResetConfirmRequest struct {
	Token     string `json:"token" form:"token"`
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
}
