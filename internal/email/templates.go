package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const TemplateMagicLink = "magic_link"

const magicLinkHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #3b0764;">
  <h2>Kalā Sangam</h2>
  <p>Click the link below to sign in. It expires in {{.TTLMinutes}} minutes and works once.</p>
  <p><a href="{{.Link}}">Sign in</a></p>
  <p style="color:#64748b;font-size:12px;">If you did not request this email you can ignore it.</p>
</body>
</html>`

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	// встроенный шаблон валиден, ошибка здесь невозможна
	_ = tm.AddTemplate(TemplateMagicLink, magicLinkHTML)
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет (или заменяет) шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
