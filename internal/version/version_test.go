package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	tests := map[string]string{
		"0123456789abcdef": "01234567",
		"abc":              "abc",
		"":                 "",
	}
	for in, want := range tests {
		if got := shortCommit(in); got != want {
			t.Errorf("shortCommit(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestString(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })

	Commit, Date = "unknown", "unknown"
	if got := String(); !strings.HasPrefix(got, "colorwaver version "+Version+" (") {
		t.Errorf("String() = %q", got)
	}

	Commit, Date = "abc", "2026-01-02T03:04:05Z"
	if got := String(); !strings.Contains(got, "commit: abc,") {
		t.Errorf("String() = %q, want short commit", got)
	}
}
