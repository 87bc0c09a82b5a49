package mail

import (
	"fmt"

	"github.com/tu-usuario/distrifarma-api/internal/application/alerts"
	"github.com/tu-usuario/distrifarma-api/pkg/config"
	"gopkg.in/gomail.v2"
)

var _ alerts.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementa el canal de correo de alertas sobre SMTP (gomail).
// Abre y cierra la conexión por envío: el volumen de alertas es bajo y así
// no se mantiene una sesión SMTP viva entre escaneos.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send envía subject/body al destinatario administrativo configurado.
func (m *SMTPMailer) Send(subject, body string) error {
	if m.cfg.Host == "" || m.cfg.To == "" {
		return fmt.Errorf("smtp: configuración incompleta")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
