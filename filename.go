package start2d

import (
	"strconv"
	"strings"
	"time"
)

// DefaultFilenameTemplate names exports like "7521-artwork-20190513-161132".
const DefaultFilenameTemplate = "@seed-artwork-@date"

// Filename template tokens.
const (
	SeedToken = "@seed"
	DateToken = "@date"
)

// dateLayout is YYYYMMDD-HHMMSS.
const dateLayout = "20060102-150405"

// ResolveFilename substitutes the @seed and @date tokens of template.
// Tokens match case-insensitively; any other @word is kept literally.
func ResolveFilename(template string, seed int64, t time.Time) string {
	var b strings.Builder
	b.Grow(len(template) + 16)
	for i := 0; i < len(template); {
		if template[i] != '@' {
			b.WriteByte(template[i])
			i++
			continue
		}
		j := i + 1
		for j < len(template) && isTokenByte(template[j]) {
			j++
		}
		switch strings.ToLower(template[i:j]) {
		case SeedToken:
			b.WriteString(strconv.FormatInt(seed, 10))
		case DateToken:
			b.WriteString(t.Format(dateLayout))
		default:
			b.WriteString(template[i:j])
		}
		i = j
	}
	return b.String()
}

func isTokenByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// ComposeTemplate joins a prefix, base name and suffix with dashes,
// skipping empty parts. ComposeTemplate("@seed", "artwork", "@date")
// returns DefaultFilenameTemplate.
func ComposeTemplate(prefix, name, suffix string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, name, suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}
