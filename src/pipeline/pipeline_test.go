package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"slackwatch-agent/src/parse"
)

// fakeSource returns canned messages and records the requested limit.
type fakeSource struct {
	messages       []parse.Message
	err            error
	requestedLimit int
}

func (f *fakeSource) History(ctx context.Context, channelID string, limit int) ([]parse.Message, error) {
	f.requestedLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.messages) {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func buildMessages(n int, workflow string) []parse.Message {
	messages := make([]parse.Message, 0, n)
	for i := 0; i < n; i++ {
		messages = append(messages, parse.Message{
			Timestamp: fmt.Sprintf("170000000%d.000000", i),
			Text:      fmt.Sprintf("workflow: %s build succeeded in run %d", workflow, i),
		})
	}
	return messages
}

func TestRecentNoFilterFetchesExactly(t *testing.T) {
	src := &fakeSource{messages: buildMessages(20, "nightly")}

	builds, err := Recent(context.Background(), src, "C1", Options{Limit: 7})
	if err != nil {
		t.Fatalf("Recent() returned error: %v", err)
	}
	if src.requestedLimit != 7 {
		t.Errorf("requested limit = %d, expected 7", src.requestedLimit)
	}
	if len(builds) != 7 {
		t.Errorf("len(builds) = %d, expected 7", len(builds))
	}
}

func TestRecentDefaultsAndClamping(t *testing.T) {
	tests := []struct {
		requested int
		fetched   int
	}{
		{0, DefaultLimit},
		{-3, DefaultLimit},
		{25, MaxLimit},
		{3, 3},
	}

	for _, tt := range tests {
		src := &fakeSource{messages: buildMessages(30, "nightly")}
		if _, err := Recent(context.Background(), src, "C1", Options{Limit: tt.requested}); err != nil {
			t.Fatalf("Recent(limit=%d) returned error: %v", tt.requested, err)
		}
		if src.requestedLimit != tt.fetched {
			t.Errorf("Recent(limit=%d) fetched %d messages, expected %d", tt.requested, src.requestedLimit, tt.fetched)
		}
	}
}

func TestRecentFilterOverFetches(t *testing.T) {
	src := &fakeSource{messages: buildMessages(30, "nightly")}

	_, err := Recent(context.Background(), src, "C1", Options{Limit: 5, Workflow: "nightly"})
	if err != nil {
		t.Fatalf("Recent() returned error: %v", err)
	}
	if src.requestedLimit != 20 {
		t.Errorf("requested limit = %d, expected 20 (limit*4)", src.requestedLimit)
	}

	// At the maximum limit the over-fetch stays under the 100 cap.
	src = &fakeSource{messages: buildMessages(30, "nightly")}
	if _, err := Recent(context.Background(), src, "C1", Options{Limit: 20, Workflow: "nightly"}); err != nil {
		t.Fatalf("Recent() returned error: %v", err)
	}
	if src.requestedLimit != 80 {
		t.Errorf("requested limit = %d, expected 80", src.requestedLimit)
	}
}

func TestRecentFilterTruncatesToLimit(t *testing.T) {
	src := &fakeSource{messages: buildMessages(30, "nightly")}

	builds, err := Recent(context.Background(), src, "C1", Options{Limit: 5, Workflow: "nightly"})
	if err != nil {
		t.Fatalf("Recent() returned error: %v", err)
	}
	if len(builds) != 5 {
		t.Errorf("len(builds) = %d, expected 5", len(builds))
	}
	// source order preserved: newest first means run 0 leads
	if builds[0].Workflow != "nightly" {
		t.Errorf("Workflow = %q, expected %q", builds[0].Workflow, "nightly")
	}
}

func TestRecentFilterNeverPads(t *testing.T) {
	// Only two of the fetched messages mention the filtered workflow.
	messages := buildMessages(10, "release")
	messages = append(messages, buildMessages(2, "nightly")...)
	src := &fakeSource{messages: messages}

	builds, err := Recent(context.Background(), src, "C1", Options{Limit: 5, Workflow: "nightly"})
	if err != nil {
		t.Fatalf("Recent() returned error: %v", err)
	}
	if len(builds) != 2 {
		t.Errorf("len(builds) = %d, expected 2 (no padding)", len(builds))
	}
}

func TestRecentFilterMatchesAttachments(t *testing.T) {
	src := &fakeSource{messages: []parse.Message{
		{Timestamp: "1700000000.000000", Text: "CI update", Attachments: []parse.Attachment{
			{Title: "Nightly Deploy", Text: "all green"},
		}},
		{Timestamp: "1700000001.000000", Text: "unrelated chatter"},
	}}

	builds, err := Recent(context.Background(), src, "C1", Options{Limit: 5, Workflow: "nightly"})
	if err != nil {
		t.Fatalf("Recent() returned error: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("len(builds) = %d, expected 1", len(builds))
	}
}

func TestRecentSourceError(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("failed to fetch channel history: channel_not_found")}

	_, err := Recent(context.Background(), src, "C1", Options{Limit: 5})
	if err == nil {
		t.Fatal("expected error from source to propagate")
	}
	// The source's own description passes through without another wrap, so
	// the envelope never stutters "failed to fetch ...: failed to fetch ...".
	if strings.Count(err.Error(), "failed to fetch") != 1 {
		t.Errorf("error = %q, expected the source message unwrapped", err)
	}
}
