package parse

import (
	"reflect"
	"testing"
)

func TestSplitRealtors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single name", "Alice Smith", []string{"Alice Smith"}},
		{"slash", "Alice Smith / Bob Jones", []string{"Alice Smith", "Bob Jones"}},
		{"ampersand", "Alice & Bob", []string{"Alice", "Bob"}},
		{"and word", "Alice Smith and Bob Jones", []string{"Alice Smith", "Bob Jones"}},
		{"comma", "Smith, Jones", []string{"Smith", "Jones"}},
		{"empty", "", nil},
		{"only separators", " / ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRealtors(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitRealtors(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
