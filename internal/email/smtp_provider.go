package email

import (
	"fmt"

	"argent_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail),
	}
}

func (p *SMTPProvider) SendVerification(to, link string) error {
	return p.send(to, "Verify your ar.gent email", templateVerification, templateData{Link: link})
}

func (p *SMTPProvider) SendResetPassword(to, link string) error {
	return p.send(to, "Reset your ar.gent password", templateResetPassword, templateData{Link: link})
}

func (p *SMTPProvider) SendApproveJobNotice(to, jobTitle, contactEmail, message string) error {
	return p.send(to, "Your application has been approved", templateApproveNotice,
		templateData{JobTitle: jobTitle, ContactEmail: contactEmail, Message: message})
}

func (p *SMTPProvider) SendRejectJobNotice(to, jobTitle, message string) error {
	return p.send(to, "Your application has been rejected", templateRejectNotice,
		templateData{JobTitle: jobTitle, Message: message})
}

func (p *SMTPProvider) send(to, subject, tmpl string, data templateData) error {
	body, err := renderTemplate(tmpl, data)
	if err != nil {
		return fmt.Errorf("failed to render template %s: %w", tmpl, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", p.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
