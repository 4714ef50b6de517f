// Package parse extracts structured build information from free-text CI
// notification messages using ordered heuristic pattern matching.
//
// Extraction never fails: unrecognized text degrades to StatusUnknown and
// absent workflow/duration fields rather than an error.
package parse

// BuildStatus is the outcome classification of a CI notification.
type BuildStatus string

const (
	StatusSucceeded BuildStatus = "succeeded"
	StatusFailed    BuildStatus = "failed"
	StatusRunning   BuildStatus = "running"
	StatusCancelled BuildStatus = "cancelled"
	StatusUnknown   BuildStatus = "unknown"
)

// Attachment is the rich-text payload attached to a message, as received.
type Attachment struct {
	Title string
	Text  string
	Color string
}

// Message is one raw channel message as delivered by the messaging API.
// The timestamp is the decimal-seconds form (e.g. "1700000000.123456").
type Message struct {
	Timestamp   string
	Text        string
	User        string
	Attachments []Attachment
}

// Duration is an elapsed-time value extracted from message text. It is
// derived purely from the text and is not checked against real elapsed time.
type Duration struct {
	Minutes      int    `json:"minutes"`
	Seconds      int    `json:"seconds"`
	TotalSeconds int    `json:"total_seconds"`
	Formatted    string `json:"formatted"`
}

// ParsedAttachment is the truncated attachment summary included in output
// records. The title passes through unmodified; text is capped at
// MaxAttachmentTextLen.
type ParsedAttachment struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
	Color string `json:"color,omitempty"`
}

// ParsedBuild is the normalized record produced for every raw message.
// It lives for a single tool invocation and is never persisted.
type ParsedBuild struct {
	Timestamp   string             `json:"timestamp"`
	Status      BuildStatus        `json:"status"`
	Workflow    string             `json:"workflow,omitempty"`
	Duration    *Duration          `json:"duration,omitempty"`
	Text        string             `json:"text"`
	User        string             `json:"user,omitempty"`
	Attachments []ParsedAttachment `json:"attachments,omitempty"`
}
