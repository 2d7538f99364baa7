package email

// Email is an outbound message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds the html templates
type TemplateData map[string]interface{}
