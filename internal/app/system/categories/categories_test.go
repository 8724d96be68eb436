package categories

import "testing"

func TestIsFilter(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"All", false},
		{"Frontend", true},
		{"frontend", true}, // case-sensitive: not the sentinel
		{"Game Dev", true},
	}

	for _, tt := range tests {
		if got := IsFilter(tt.input); got != tt.want {
			t.Errorf("IsFilter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
