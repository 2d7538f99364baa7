package app

import "contacts_backend/internal/email"

// MockEmailProvider is used in tests and local development when no SMTP
// server is configured.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }
func (m *MockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	return nil
}
func (m *MockEmailProvider) SendConfirmation(to, username, host, token string) error { return nil }
func (m *MockEmailProvider) Validate() error                                        { return nil }
