package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxFallbackTitleLen bounds the attachment-title fallback, in characters;
// titles this long or longer are treated as prose rather than a workflow name.
const maxFallbackTitleLen = 50

var (
	// workflowLabelPattern matches an explicit "workflow: <name>" label.
	// The capture stops at a newline, comma, end of text, or a trailing
	// verb/noun ("build", "finished", ...) so that
	// "Workflow: Nutri-E build finished" yields "Nutri-E".
	workflowLabelPattern = regexp.MustCompile(`(?i)workflow:\s*([^\n,]+?)(?:\s+(?:build|workflow|pipeline|run|took|finished|completed|started|failed|succeeded|was|has|is)\b|[\n,]|$)`)

	// workflowLeadPattern matches a leading capitalized-word sequence
	// immediately followed by "build" or "workflow", e.g. "Deploy Prod build
	// failed". Known to false-positive on unrelated capitalized phrases.
	workflowLeadPattern = regexp.MustCompile(`^([A-Z][\w-]*(?:\s+[A-Z][\w-]*)*)\s+(?i:build|workflow)\b`)
)

// ExtractWorkflow returns the workflow identifier found in the text, or
// falls back to the first attachment's title when it looks like a name.
// The second return value reports whether a candidate qualified.
func ExtractWorkflow(text string, attachments []Attachment) (string, bool) {
	if m := workflowLabelPattern.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name, true
		}
	}

	if m := workflowLeadPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	if len(attachments) > 0 {
		title := attachments[0].Title
		if n := utf8.RuneCountInString(title); n > 0 && n < maxFallbackTitleLen {
			return title, true
		}
	}

	return "", false
}
