package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the bodies are given directly, or Template names an embedded
// template rendered with Data in Lang (en, ru, tm).
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Lang     string         `json:"lang,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
