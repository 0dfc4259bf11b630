package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		want    string
		wantErr error
	}{
		{name: "under limit", input: "abc", limit: 10, want: "abc"},
		{name: "exact limit", input: "abcdef", limit: 6, want: "abcdef"},
		{name: "over limit", input: "abcdefg", limit: 6, wantErr: ErrSizeLimitExceeded},
		{name: "zero limit empty input", input: "", limit: 0, want: ""},
		{name: "zero limit", input: "a", limit: 0, wantErr: ErrSizeLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewLimitedReader(strings.NewReader(tt.input), tt.limit))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReadAll() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadAll() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadAll() = %q, want %q", got, tt.want)
			}
		})
	}
}
