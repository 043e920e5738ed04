package mailer

import (
	"fmt"
	"html"

	"keep-notes-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, name string) error
}

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	SenderName string
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	log    logger.ILogger
}

// NewEmailService returns a no-op mailer when no SMTP host is configured.
func NewEmailService(cfg Config, log logger.ILogger) IEmailService {
	if cfg.Host == "" {
		return &nopEmailService{log: log}
	}
	return &emailService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   formatSender(cfg.SenderName, cfg.Username),
		log:    log,
	}
}

func formatSender(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func welcomeMessage(from, toEmail, name string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to Keep")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s, welcome to Keep!</h2>
			<p>Your account is ready. Start capturing notes, pin the important ones and archive the rest.</p>
			<p>Notes you delete stay in the trash for 7 days before they are removed for good.</p>
		</div>
	`, html.EscapeString(name))

	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendWelcome(toEmail, name string) error {
	m := welcomeMessage(s.from, toEmail, name)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("MAILER", "Failed to send welcome email", map[string]interface{}{
			"to":    toEmail,
			"error": err,
		})
		return err
	}

	s.log.Info("MAILER", "Welcome email sent", map[string]interface{}{"to": toEmail})
	return nil
}

type nopEmailService struct {
	log logger.ILogger
}

func (s *nopEmailService) SendWelcome(toEmail, name string) error {
	s.log.Debug("MAILER", "SMTP not configured, skipping welcome email", map[string]interface{}{"to": toEmail})
	return nil
}
