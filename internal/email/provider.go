package email

// Provider sends transactional email
type Provider interface {
	// Send delivers a prepared message
	Send(email *Email) error

	// SendWithTemplate renders a template and delivers the result
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// SendConfirmation delivers the address-confirmation letter carrying
	// the signed token
	SendConfirmation(to, username, host, token string) error

	// Validate checks the provider configuration
	Validate() error
}

// TemplateRenderer renders named html templates
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
