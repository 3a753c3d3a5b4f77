package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider отправляет письма через gomail.
type SMTPProvider struct {
	config     *SMTPConfig
	dialer     *gomail.Dialer
	renderer   TemplateRenderer
	ttlMinutes int
}

func NewSMTPProvider(config *SMTPConfig, renderer TemplateRenderer, linkTTLMinutes int) *SMTPProvider {
	if renderer == nil {
		renderer = NewTemplateManager()
	}
	return &SMTPProvider{
		config:     config,
		dialer:     gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer:   renderer,
		ttlMinutes: linkTTLMinutes,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return errors.New("email has no recipients")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}

	// gomail не принимает context: проверяем отмену до дозвона
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendMagicLink(ctx context.Context, to, link string) error {
	html, err := p.renderer.Render(TemplateMagicLink, TemplateData{
		"Link":       link,
		"TTLMinutes": p.ttlMinutes,
	})
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(ctx, &Email{
		To:       []string{to},
		Subject:  "Your Kalā Sangam sign-in link",
		Body:     "Sign in: " + link,
		HTMLBody: html,
	})
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}
