package parse

import "testing"

func TestMLSID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means nil
	}{
		{"mls prefix", "https://www.example.com/mls/8831204", "8831204"},
		{"listing prefix", "https://site.com/listing-4417652-details", "4417652"},
		{"mls with separators", "https://redfin.com/CO/Denver/home?MLS#=2248155", "2248155"},
		{"bare digit fallback", "https://zillow.com/homedetails/12345678_zpid/", "12345678"},
		{"short digit runs ignored", "https://site.com/co/8020/page2", ""},
		{"no digits", "https://site.com/some-home", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MLSID(tt.in)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("MLSID(%q) = %q, want nil", tt.in, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("MLSID(%q) = %v, want %q", tt.in, got, tt.want)
			}
		})
	}
}
