package start2d

import (
	"errors"
	"slices"
	"testing"
)

func TestLookupPaper(t *testing.T) {
	tests := []struct {
		name string
		key  string
		w, h Value
	}{
		{"A4", "A4", V(210, MM), V(297, MM)},
		{"a4", "A4", V(210, MM), V(297, MM)},
		{"A10", "A10", V(26, MM), V(37, MM)},
		{"letter", "LETTER", V(8.5, IN), V(11, IN)},
		{"ansi a", "ANSIA", V(8.5, IN), V(11, IN)},
		{"Arch-E1", "ARCHE1", V(30, IN), V(42, IN)},
		{"arch_d", "ARCHD", V(24, IN), V(36, IN)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LookupPaper(tt.name)
			if err != nil {
				t.Fatalf("LookupPaper(%q) error = %v", tt.name, err)
			}
			if p.Name != tt.key || p.Width != tt.w || p.Height != tt.h {
				t.Errorf("LookupPaper(%q) = %+v, want %s %v x %v", tt.name, p, tt.key, tt.w, tt.h)
			}
		})
	}
}

func TestLookupPaperUnknown(t *testing.T) {
	for _, name := range []string{"bogus", "", "A11", "D4"} {
		if _, err := LookupPaper(name); !errors.Is(err, ErrPaperSizeNotFound) {
			t.Errorf("LookupPaper(%q) error = %v, want ErrPaperSizeNotFound", name, err)
		}
	}
}

func TestPaperSizesShortSideFirst(t *testing.T) {
	for _, name := range PaperNames() {
		p, err := LookupPaper(name)
		if err != nil {
			t.Fatalf("LookupPaper(%q) error = %v", name, err)
		}
		if p.Width.Unit != p.Height.Unit {
			t.Errorf("%s: mixed units %s and %s", name, p.Width.Unit, p.Height.Unit)
		}
		if p.Width.Magnitude > p.Height.Magnitude {
			t.Errorf("%s: width %v exceeds height %v", name, p.Width, p.Height)
		}
	}
}

func TestPaperNames(t *testing.T) {
	names := PaperNames()
	if len(names) != len(paperSizes) {
		t.Errorf("len(PaperNames()) = %d, want %d", len(names), len(paperSizes))
	}
	if !slices.IsSorted(names) {
		t.Error("PaperNames() is not sorted")
	}
	for _, want := range []string{"A0", "B5", "C10", "LEDGER", "ANSIE", "ARCHE1"} {
		if !slices.Contains(names, want) {
			t.Errorf("PaperNames() is missing %s", want)
		}
	}
}

func TestSuggestPaper(t *testing.T) {
	if got, ok := SuggestPaper("leter"); !ok || got != "LETTER" {
		t.Errorf("SuggestPaper(leter) = %q, %v, want LETTER, true", got, ok)
	}
	if got, ok := SuggestPaper("A1"); !ok || got != "A1" {
		t.Errorf("SuggestPaper(A1) = %q, %v, want A1, true", got, ok)
	}
	if _, ok := SuggestPaper("zzz"); ok {
		t.Error("SuggestPaper(zzz) found a match")
	}
	if _, ok := SuggestPaper(""); ok {
		t.Error("SuggestPaper(\"\") found a match")
	}
}
