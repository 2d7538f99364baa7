package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Built-in templates. The confirmation letter mirrors the link format the
// auth routes expose: {host}/api/auth/confirmed_email/{token}.
const confirmationTemplate = `
<html>
<body>
	<h2>Hello, {{.Username}}!</h2>
	<p>Thank you for registering. Please confirm your email address:</p>
	<p><a href="{{.Host}}/api/auth/confirmed_email/{{.Token}}">Confirm your email</a></p>
	<p>The link is valid for 7 days. If you did not sign up, ignore this letter.</p>
</body>
</html>`

// TemplateManager implements TemplateRenderer over html/template
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a manager preloaded with the built-in templates
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	if err := tm.AddTemplate("email_confirmation", confirmationTemplate); err != nil {
		return nil, err
	}
	return tm, nil
}

// Render executes a named template with data
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

// AddTemplate parses and registers a template
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
