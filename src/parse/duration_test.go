package parse

import "testing"

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		text      string
		minutes   int
		seconds   int
		total     int
		formatted string
	}{
		{"Build completed in 5 minutes 30 seconds", 5, 30, 330, "5m 30s"},
		{"Duration: 12 min 5 sec", 12, 5, 725, "12m 5s"},
		{"duration: 7", 7, 0, 420, "7m 0s"},
		{"deploy took 3 minutes", 3, 0, 180, "3m 0s"},
		{"Deploy took 4 min and 20 sec", 4, 20, 260, "4m 20s"},
		{"finished in 2:45", 2, 45, 165, "2m 45s"},
		{"elapsed 0:45", 0, 45, 45, "45s"},
		{"ran for 8 mins", 8, 0, 480, "8m 0s"},
	}

	for _, tt := range tests {
		d := ExtractDuration(tt.text)
		if d == nil {
			t.Errorf("ExtractDuration(%q) = nil, expected a duration", tt.text)
			continue
		}
		if d.Minutes != tt.minutes || d.Seconds != tt.seconds {
			t.Errorf("ExtractDuration(%q) = %dm %ds, expected %dm %ds",
				tt.text, d.Minutes, d.Seconds, tt.minutes, tt.seconds)
		}
		if d.TotalSeconds != tt.total {
			t.Errorf("ExtractDuration(%q).TotalSeconds = %d, expected %d", tt.text, d.TotalSeconds, tt.total)
		}
		if d.Formatted != tt.formatted {
			t.Errorf("ExtractDuration(%q).Formatted = %q, expected %q", tt.text, d.Formatted, tt.formatted)
		}
	}
}

func TestExtractDurationNoMatch(t *testing.T) {
	tests := []string{
		"Build failed on step 3",
		"no timing information here",
		"",
	}

	for _, text := range tests {
		if d := ExtractDuration(text); d != nil {
			t.Errorf("ExtractDuration(%q) = %+v, expected nil", text, d)
		}
	}
}

func TestExtractDurationPatternPriority(t *testing.T) {
	// The labeled "duration:" form wins over later patterns even when both
	// are present in the text.
	d := ExtractDuration("duration: 10 min (took 2 min)")
	if d == nil {
		t.Fatal("expected a duration")
	}
	if d.Minutes != 10 {
		t.Errorf("Minutes = %d, expected 10", d.Minutes)
	}
}
