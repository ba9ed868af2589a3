package start2d

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PaperSize is a named sheet size. Width is the short side.
type PaperSize struct {
	Name          string
	Width, Height Value
}

// DefaultSize is used when a named paper size cannot be resolved.
var DefaultSize = [2]Value{V(297, MM), V(210, MM)}

func mm(w, h float64) [2]Value { return [2]Value{V(w, MM), V(h, MM)} }
func in(w, h float64) [2]Value { return [2]Value{V(w, IN), V(h, IN)} }

var paperSizes = map[string][2]Value{
	"A0":  mm(841, 1189),
	"A1":  mm(594, 841),
	"A2":  mm(420, 594),
	"A3":  mm(297, 420),
	"A4":  mm(210, 297),
	"A5":  mm(148, 210),
	"A6":  mm(105, 148),
	"A7":  mm(74, 105),
	"A8":  mm(52, 74),
	"A9":  mm(37, 52),
	"A10": mm(26, 37),

	"B0":  mm(1000, 1414),
	"B1":  mm(707, 1000),
	"B2":  mm(500, 707),
	"B3":  mm(353, 500),
	"B4":  mm(250, 353),
	"B5":  mm(176, 250),
	"B6":  mm(125, 176),
	"B7":  mm(88, 125),
	"B8":  mm(62, 88),
	"B9":  mm(44, 62),
	"B10": mm(31, 44),

	"C0":  mm(917, 1297),
	"C1":  mm(648, 917),
	"C2":  mm(458, 648),
	"C3":  mm(324, 458),
	"C4":  mm(229, 324),
	"C5":  mm(162, 229),
	"C6":  mm(114, 162),
	"C7":  mm(81, 114),
	"C8":  mm(57, 81),
	"C9":  mm(40, 57),
	"C10": mm(28, 40),

	"LEDGER": in(11, 17),
	"LEGAL":  in(8.5, 14),
	"LETTER": in(8.5, 11),
	"JUNIOR": in(5, 8),

	"ANSIA": in(8.5, 11),
	"ANSIB": in(11, 17),
	"ANSIC": in(17, 22),
	"ANSID": in(22, 34),
	"ANSIE": in(34, 44),

	"ARCHA":  in(9, 12),
	"ARCHB":  in(12, 18),
	"ARCHC":  in(18, 24),
	"ARCHD":  in(24, 36),
	"ARCHE":  in(36, 48),
	"ARCHE1": in(30, 42),
}

var upper = cases.Upper(language.Und)

// normalizePaperName upper-cases name and drops spaces, dashes and
// underscores, so "ansi a" and "Arch-E1" match the table keys.
func normalizePaperName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, name)
	return upper.String(name)
}

// LookupPaper returns the paper size with the given name.
// Matching is case-insensitive and ignores separators.
func LookupPaper(name string) (PaperSize, error) {
	key := normalizePaperName(name)
	dims, ok := paperSizes[key]
	if !ok {
		return PaperSize{}, fmt.Errorf("%w: %q", ErrPaperSizeNotFound, name)
	}
	return PaperSize{Name: key, Width: dims[0], Height: dims[1]}, nil
}

// PaperNames returns all known paper size names, sorted.
func PaperNames() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SuggestPaper returns the known name closest to name, if any.
func SuggestPaper(name string) (string, bool) {
	key := normalizePaperName(name)
	if key == "" {
		return "", false
	}
	names := PaperNames()
	matches := fuzzy.Find(key, names)
	if len(matches) == 0 {
		return "", false
	}
	// Prefer the shortest of the best-scoring candidates: "A1" over "A10".
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score < best.Score {
			break
		}
		if len(m.Str) < len(best.Str) {
			best = m
		}
	}
	return best.Str, true
}
