package pagination

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero value gets defaults", Params{}, Params{Limit: DefaultLimit}},
		{"negative inputs clamp", Params{Limit: -5, Offset: -10}, Params{Limit: DefaultLimit}},
		{"oversized limit caps", Params{Limit: 10000, Offset: 40}, Params{Limit: MaxLimit, Offset: 40}},
		{"in-range values pass through", Params{Limit: 25, Offset: 75}, Params{Limit: 25, Offset: 75}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	page := NewPage([]string{"a", "b"}, 12, Params{Limit: 2, Offset: 4})
	if page.Total != 12 || page.Limit != 2 || page.Offset != 4 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}
	items, ok := page.Items.([]string)
	if !ok || len(items) != 2 {
		t.Fatalf("unexpected page items: %+v", page.Items)
	}
}
