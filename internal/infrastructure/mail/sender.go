package mail

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

var (
	_ auth.MailSender = (*SMTPSender)(nil)
	_ auth.MailSender = (*LogSender)(nil)
)

// SMTPSender envía correos de restablecimiento vía SMTP (gomail).
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender construye el sender con la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendPasswordReset envía el enlace de restablecimiento al correo del usuario.
func (s *SMTPSender) SendPasswordReset(to, username, resetLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Restablecimiento de contraseña")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nHaz clic en el enlace para restablecer tu contraseña:\n\n%s\n\nSi no lo solicitaste, ignora este correo.",
		username, resetLink,
	))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo de reset: %w", err)
	}
	return nil
}

// LogSender sender de desarrollo: escribe el enlace en el log en vez de enviarlo.
type LogSender struct {
	log zerolog.Logger
}

// NewLogSender construye el sender de desarrollo.
func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendPasswordReset(to, username, resetLink string) error {
	s.log.Info().Str("to", to).Str("link", resetLink).Msg("correo de restablecimiento (modo desarrollo)")
	return nil
}
