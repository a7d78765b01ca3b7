package storage

import "testing"

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@alice", "alice"},
		{"Alice", "alice"},
		{"  @Alice_Smith  ", "alice_smith"},
		{"@", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHandle(tt.in); got != tt.want {
			t.Errorf("NormalizeHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
