package parse

import "testing"

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Address
	}{
		{
			name: "three segments",
			in:   "123 Main St, Denver, CO 80202",
			want: Address{Street: sp("123 Main St"), City: sp("Denver"), State: sp("CO"), Zip: sp("80202")},
		},
		{
			name: "unit in street",
			in:   "123 Main St Apt 4B, Denver, CO 80202",
			want: Address{Street: sp("123 Main St"), Unit: sp("Apt 4B"), City: sp("Denver"), State: sp("CO"), Zip: sp("80202")},
		},
		{
			name: "suite canonicalized",
			in:   "500 Broadway Suite 210, Denver, CO 80203",
			want: Address{Street: sp("500 Broadway"), Unit: sp("Ste 210"), City: sp("Denver"), State: sp("CO"), Zip: sp("80203")},
		},
		{
			name: "zip plus four",
			in:   "77 Pine Rd, Boulder, CO 80301-2345",
			want: Address{Street: sp("77 Pine Rd"), City: sp("Boulder"), State: sp("CO"), Zip: sp("80301-2345")},
		},
		{
			name: "two segments with state zip",
			in:   "456 Oak Ave, Austin TX 78701",
			want: Address{Street: sp("456 Oak Ave"), City: sp("Austin"), State: sp("TX"), Zip: sp("78701")},
		},
		{
			name: "two segments city only",
			in:   "456 Oak Ave, Austin",
			want: Address{Street: sp("456 Oak Ave"), City: sp("Austin")},
		},
		{
			name: "state without zip in last segment",
			in:   "9 Elm Ct, Portland, OR",
			want: Address{Street: sp("9 Elm Ct"), City: sp("Portland"), State: sp("OR")},
		},
		{
			name: "single segment yields nothing",
			in:   "just a street name",
			want: Address{},
		},
		{
			name: "empty",
			in:   "",
			want: Address{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAddress(tt.in)
			checkField(t, "Street", got.Street, tt.want.Street)
			checkField(t, "Unit", got.Unit, tt.want.Unit)
			checkField(t, "City", got.City, tt.want.City)
			checkField(t, "State", got.State, tt.want.State)
			checkField(t, "Zip", got.Zip, tt.want.Zip)
		})
	}
}

func checkField(t *testing.T, name string, got, want *string) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", name, deref(got), deref(want))
	case *got != *want:
		t.Errorf("%s = %q, want %q", name, *got, *want)
	}
}

func sp(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
