package parse

import (
	"fmt"
	"regexp"
	"strconv"
)

// durationPatterns are tried in priority order; the first pattern that
// matches anywhere in the text wins. The first capture group is minutes,
// the second (when present) is seconds.
//
// The labeled "duration:" form accepts a bare number as minutes; the
// remaining forms require a minutes unit word so that phrases like
// "took 30 seconds" do not parse as 30 minutes.
var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)duration:?\s*(\d+)(?:\s*min(?:ute)?s?)?(?:\s*(\d+)\s*sec(?:ond)?s?)?`),
	regexp.MustCompile(`(?i)took\s+(\d+)\s*min(?:ute)?s?(?:\s*(?:and\s+)?(\d+)\s*sec(?:ond)?s?)?`),
	regexp.MustCompile(`(?i)completed\s+in\s+(\d+)\s*min(?:ute)?s?(?:\s*(?:and\s+)?(\d+)\s*sec(?:ond)?s?)?`),
	regexp.MustCompile(`(?i)\b(\d+)\s*min(?:ute)?s?(?:\s*(?:and\s+)?(\d+)\s*sec(?:ond)?s?)?`),
	regexp.MustCompile(`(?i)\b(\d+):(\d{2})(?:\s*min)?\b`),
}

// ExtractDuration scans text for an elapsed-duration phrase and returns
// the parsed value, or nil when no pattern matches.
func ExtractDuration(text string) *Duration {
	for _, re := range durationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		minutes, _ := strconv.Atoi(m[1])
		seconds := 0
		if m[2] != "" {
			seconds, _ = strconv.Atoi(m[2])
		}

		return &Duration{
			Minutes:      minutes,
			Seconds:      seconds,
			TotalSeconds: minutes*60 + seconds,
			Formatted:    formatDuration(minutes, seconds),
		}
	}
	return nil
}

// formatDuration renders "{m}m {s}s", dropping the minutes part when zero.
func formatDuration(minutes, seconds int) string {
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
