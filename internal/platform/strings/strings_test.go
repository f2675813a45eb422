package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	def := []string{"a"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	in := []string{"b", "c"}
	if got := IfEmpty(in, def); len(got) != 2 || got[0] != "b" {
		t.Fatalf("IfEmpty(in) = %v", got)
	}
}

func TestEmptyToNil(t *testing.T) {
	if got := EmptyToNil("  \t "); got != "" {
		t.Fatalf("EmptyToNil whitespace = %q", got)
	}
	if got := EmptyToNil(" x "); got != " x " {
		t.Fatalf("EmptyToNil keeps content = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short stays", "salam", 10, "salam"},
		{"exact stays", "salam", 5, "salam"},
		{"cut adds ellipsis", "salam khouya", 5, "salam…"},
		{"multibyte runes", "اضربوهم", 3, "اضر…"},
		{"zero", "salam", 0, ""},
		{"negative", "salam", -1, ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.n); got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
			}
		})
	}
}
