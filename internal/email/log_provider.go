package email

import (
	"context"
	"sync"

	"kalasangam_backend/internal/logger"
)

// LogProvider используется когда SMTP выключен (локальная разработка, тесты):
// письма пишутся в лог и запоминаются.
type LogProvider struct {
	mu   sync.Mutex
	sent []Email
}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	logger.CtxInfo(ctx, "email (not sent, smtp disabled)",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Body,
	)
	return nil
}

func (p *LogProvider) SendMagicLink(ctx context.Context, to, link string) error {
	return p.Send(ctx, &Email{
		To:      []string{to},
		Subject: "Your Kalā Sangam sign-in link",
		Body:    link,
	})
}

// Sent returns a copy of everything sent so far.
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *LogProvider) Validate() error { return nil }
func (p *LogProvider) Close() error    { return nil }
