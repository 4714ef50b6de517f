package parse

import (
	"strconv"
	"strings"
	"time"
)

const (
	// MaxTextLen caps the message body, in characters, carried in output records.
	MaxTextLen = 500

	// MaxAttachmentTextLen caps each attachment's text, in characters.
	MaxAttachmentTextLen = 200
)

// timestampLayout renders ISO-8601 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Normalize produces exactly one ParsedBuild for a raw message. All
// extraction failures degrade to defaults; this function never errors.
//
// The status is classified on the raw body only, while workflow and
// duration are extracted from the body combined with attachment text.
func Normalize(msg Message) ParsedBuild {
	combined := CombinedText(msg)
	workflow, _ := ExtractWorkflow(combined, msg.Attachments)

	parsed := ParsedBuild{
		Timestamp: FormatTimestamp(msg.Timestamp),
		Status:    ClassifyStatus(msg.Text),
		Workflow:  workflow,
		Duration:  ExtractDuration(combined),
		Text:      Truncate(msg.Text, MaxTextLen),
		User:      msg.User,
	}

	if len(msg.Attachments) > 0 {
		parsed.Attachments = SummarizeAttachments(msg.Attachments)
	}

	return parsed
}

// CombinedText joins the message body with every attachment's title and
// text, space-separated, forming the searchable text for extraction.
func CombinedText(msg Message) string {
	parts := []string{msg.Text}
	for _, a := range msg.Attachments {
		if a.Title != "" {
			parts = append(parts, a.Title)
		}
		if a.Text != "" {
			parts = append(parts, a.Text)
		}
	}
	return strings.Join(parts, " ")
}

// SummarizeAttachments truncates attachment text for output records.
// Titles pass through unmodified.
func SummarizeAttachments(attachments []Attachment) []ParsedAttachment {
	summaries := make([]ParsedAttachment, 0, len(attachments))
	for _, a := range attachments {
		summaries = append(summaries, ParsedAttachment{
			Title: a.Title,
			Text:  Truncate(a.Text, MaxAttachmentTextLen),
			Color: a.Color,
		})
	}
	return summaries
}

// FormatTimestamp converts a decimal-seconds timestamp into an ISO-8601
// string with millisecond precision. Fractional digits beyond the
// millisecond are discarded. Unparsable input passes through unchanged.
func FormatTimestamp(ts string) string {
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ts
	}
	return time.UnixMilli(int64(seconds * 1000)).UTC().Format(timestampLayout)
}

// Truncate caps s at max characters, never splitting a multibyte rune.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
