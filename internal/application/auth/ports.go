package auth

// MailSender envía el correo con el enlace de restablecimiento de contraseña.
// El transporte (SMTP real o nop en desarrollo) vive en infraestructura.
type MailSender interface {
	SendPasswordReset(to, username, resetLink string) error
}
