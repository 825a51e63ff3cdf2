package mailer

// Template names understood by the email worker.
const (
	TemplateWelcome             = "welcome"
	TemplateApplicationReceived = "application_received"
)

// EmailJob is the JSON payload put on the RabbitMQ queue. Either Template+Data
// is set and the worker renders the body, or Subject/Text/HTML are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
