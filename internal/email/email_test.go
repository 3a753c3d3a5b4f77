package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_MagicLink(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateMagicLink, TemplateData{
		"Link":       "https://app/auth/callback?token=abc&x=1",
		"TTLMinutes": 15,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "15 minutes")
	// html/template экранирует ссылку
	assert.Contains(t, html, "token=abc&amp;x=1")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587, FromEmail: "a@b.c"}, nil, 15)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.test", Port: 0, FromEmail: "a@b.c"}, nil, 15)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.test", Port: 587, FromEmail: "a@b.c"}, nil, 15)
	assert.NoError(t, p.Validate())
}

func TestWithDefaults(t *testing.T) {
	c := WithDefaults(SMTPConfig{FromEmail: "a@b.c"})
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 587, c.Port)
	assert.Equal(t, "a@b.c", c.FromEmail)

	c = WithDefaults(SMTPConfig{Host: "smtp.test", Port: 2525})
	assert.Equal(t, "smtp.test", c.Host)
	assert.Equal(t, 2525, c.Port)
}

func TestLogProvider_RecordsMagicLink(t *testing.T) {
	p := NewLogProvider()
	require.NoError(t, p.SendMagicLink(context.Background(), "jdoe@example.com", "http://x/cb?token=t"))

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"jdoe@example.com"}, sent[0].To)
	assert.Equal(t, "http://x/cb?token=t", sent[0].Body)
}
