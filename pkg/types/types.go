// Package types defines the domain types shared across ratewatch.
package types

// FileRecord is the parsed content of the monitored currency rates file.
// Only the dataAsOf field is consumed; the raw string is preserved so
// messages can embed it exactly as published.
type FileRecord struct {
	DataAsOf string `json:"dataAsOf"`
}

// StalenessResult is the outcome of one staleness evaluation. It is
// always fully populated; Message is human-readable and suitable for
// an alert body or a completion log line.
type StalenessResult struct {
	Stale   bool   `json:"stale"`
	Message string `json:"message"`
}

// AlertMessage is the addressing and body of one alert email. It is
// constructed only when an alert must be sent.
type AlertMessage struct {
	Recipient string
	Subject   string
	Sender    string
	ReplyTo   string
	Body      string
}

// Validate checks the required fields in order and reports the first
// missing one. All five fields must be non-empty for a send.
func (m AlertMessage) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"recipient", m.Recipient},
		{"subject", m.Subject},
		{"sender", m.Sender},
		{"replyTo", m.ReplyTo},
		{"message", m.Body},
	}
	for _, f := range required {
		if f.value == "" {
			return NewValidationError("alert field %s is missing", f.name)
		}
	}
	return nil
}
