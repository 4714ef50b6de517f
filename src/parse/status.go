package parse

import "strings"

// statusKeywords maps keyword groups to a status, evaluated in order.
// The order is load-bearing: a message containing keywords from several
// groups resolves to the earliest group, so "failed" beats "started".
var statusKeywords = []struct {
	keywords []string
	status   BuildStatus
}{
	{[]string{"succeeded", "success"}, StatusSucceeded},
	{[]string{"failed", "failure"}, StatusFailed},
	{[]string{"started", "running"}, StatusRunning},
	{[]string{"cancelled", "canceled"}, StatusCancelled},
}

// ClassifyStatus returns exactly one BuildStatus for the given text via
// case-insensitive substring search. Text with no recognized keyword
// classifies as StatusUnknown.
func ClassifyStatus(text string) BuildStatus {
	lower := strings.ToLower(text)
	for _, group := range statusKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.status
			}
		}
	}
	return StatusUnknown
}
