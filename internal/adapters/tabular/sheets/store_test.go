package sheets

import "testing"

func TestColumnLetter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		column int
		want   string
	}{
		{1, "A"},
		{4, "D"},
		{6, "F"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
	}

	for _, tc := range cases {
		if got := columnLetter(tc.column); got != tc.want {
			t.Fatalf("columnLetter(%d) = %q, want %q", tc.column, got, tc.want)
		}
	}
}

func TestStringCells(t *testing.T) {
	t.Parallel()

	got := stringCells([]interface{}{"山田", 42, ""})
	if got[0] != "山田" || got[1] != "42" || got[2] != "" {
		t.Fatalf("unexpected cells: %v", got)
	}
}
