package log

import (
	"slices"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   string
		want Level
		ok   bool
	}{
		{in: "trace", want: LevelTrace, ok: true},
		{in: "debug", want: LevelDebug, ok: true},
		{in: "info", want: LevelInfo, ok: true},
		{in: "warn", want: LevelWarn, ok: true},
		{in: "warning", want: LevelWarn, ok: true},
		{in: "error", want: LevelError, ok: true},
		{in: " ERROR ", want: LevelError, ok: true},
		{in: "", want: LevelInfo, ok: true},
		{in: "bogus", want: DefaultLevel, ok: false},
	} {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)",
				tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	want := []string{"trace", "debug", "info", "warn", "error"}

	if got := slices.Collect(Levels()); !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   string
		want Format
		ok   bool
	}{
		{in: "text", want: FormatText, ok: true},
		{in: "json", want: FormatJSON, ok: true},
		{in: "JSON", want: FormatJSON, ok: true},
		{in: "", want: FormatText, ok: true},
		{in: "xml", want: DefaultFormat, ok: false},
	} {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = (%v, %v), want (%v, %v)",
				tt.in, got, ok, tt.want, tt.ok)
		}
	}

	want := []string{"text", "json"}
	if got := slices.Collect(Formats()); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}
