package mailer

import (
	"context"

	"github.com/wneessen/go-mail"

	"backend/internal/models"
)

// SMTPConfig carries the transactional mail settings from the environment.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SiteName string
}

// SMTP sends transactional email over plain SMTP. It satisfies
// workflow.Mailer.
type SMTP struct {
	cfg SMTPConfig
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	subject := s.cfg.SiteName + " - Order Received"
	return s.send(ctx, order.Customer.Email, subject, orderConfirmationHTML(s.cfg.SiteName, order))
}

func (s *SMTP) SendCredentials(ctx context.Context, order *models.Order) error {
	subject := s.cfg.SiteName + " - Your VPN Account"
	return s.send(ctx, order.Customer.Email, subject, credentialsHTML(s.cfg.SiteName, order))
}

func (s *SMTP) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(s.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}
