// Package pipeline turns raw channel history into parsed build records,
// applying the optional workflow filter and the result limit.
package pipeline

import (
	"context"
	"strings"

	"slackwatch-agent/src/parse"
)

const (
	// DefaultLimit is the result count used when the caller asks for none.
	DefaultLimit = 5

	// MaxLimit caps the requested result count.
	MaxLimit = 20

	// overFetchFactor and overFetchCap bound how many raw messages are
	// requested when a workflow filter will discard some of them.
	overFetchFactor = 4
	overFetchCap    = 100
)

// Source fetches raw channel history, newest first.
type Source interface {
	History(ctx context.Context, channelID string, limit int) ([]parse.Message, error)
}

// Options controls one pipeline run.
type Options struct {
	// Limit is the requested result count. Values <= 0 become DefaultLimit;
	// values above MaxLimit are clamped.
	Limit int

	// Workflow, when non-empty, keeps only builds whose workflow, text, or
	// attachment content contains it (case-insensitive substring).
	Workflow string
}

// Recent fetches the latest messages from a channel and returns them as
// parsed build records in source order (newest first).
//
// With a workflow filter the pipeline over-fetches to compensate for
// post-filter attrition; if the over-fetch still yields fewer than the
// limit, it returns however many matched.
func Recent(ctx context.Context, src Source, channelID string, opts Options) ([]parse.ParsedBuild, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	fetch := limit
	if opts.Workflow != "" {
		fetch = min(limit*overFetchFactor, overFetchCap)
	}

	// The source describes its own failures; wrapping here again would
	// stutter in the envelope text.
	messages, err := src.History(ctx, channelID, fetch)
	if err != nil {
		return nil, err
	}

	builds := make([]parse.ParsedBuild, 0, len(messages))
	for _, msg := range messages {
		builds = append(builds, parse.Normalize(msg))
	}

	if opts.Workflow != "" {
		builds = filterByWorkflow(builds, opts.Workflow)
	}
	if len(builds) > limit {
		builds = builds[:limit]
	}

	return builds, nil
}

// filterByWorkflow keeps builds matching the filter, preserving order.
func filterByWorkflow(builds []parse.ParsedBuild, workflow string) []parse.ParsedBuild {
	needle := strings.ToLower(workflow)

	var matched []parse.ParsedBuild
	for _, b := range builds {
		if buildMatches(b, needle) {
			matched = append(matched, b)
		}
	}
	return matched
}

// buildMatches reports whether the lower-cased workflow, truncated text,
// or joined attachment title+text contains the needle.
func buildMatches(b parse.ParsedBuild, needle string) bool {
	if strings.Contains(strings.ToLower(b.Workflow), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Text), needle) {
		return true
	}

	var parts []string
	for _, a := range b.Attachments {
		parts = append(parts, a.Title, a.Text)
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), needle)
}
