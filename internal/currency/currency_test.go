package currency

import "testing"

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		found    bool
	}{
		{"人民币", "CNY", true},
		{"CNY", "CNY", true},
		{"美元", "USD", true},
		{"港币", "HKD", true},
		{"欧元", "EUR", true},
		{"法郎", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Code(tt.name)
			if ok != tt.found {
				t.Fatalf("Code(%q): found=%v, want %v", tt.name, ok, tt.found)
			}
			if got != tt.expected {
				t.Errorf("Code(%q): got %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}
