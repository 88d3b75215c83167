package domain

import (
	"errors"
	"testing"
)

func TestParseAppID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare id",
			input: "570",
			want:  "570",
		},
		{
			name:  "store URL",
			input: "https://store.steampowered.com/app/570/",
			want:  "570",
		},
		{
			name:  "store URL with slug",
			input: "https://store.steampowered.com/app/730/CounterStrike_2/",
			want:  "730",
		},
		{
			name:  "id with trailing garbage",
			input: "440 ",
			want:  "440",
		},
		{
			name:    "no digits",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAppID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAppID) {
					t.Fatalf("ParseAppID(%q) error = %v, want ErrInvalidAppID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAppID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAppID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
