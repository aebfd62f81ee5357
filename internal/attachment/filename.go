package attachment

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks so "résumé.pdf" becomes "resume.pdf".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// EffectiveFileName applies the append-sys_id rewrite: the identifier is
// interleaved between basename and extension, split on the last dot.
func EffectiveFileName(name, sysID string, appendID bool) string {
	if !appendID {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	return base + "_" + sysID + ext
}

// SanitizeFileName makes a server-supplied file name safe to join with a
// destination directory: path components, control characters, and separator
// characters are stripped, and diacritics are folded to ASCII-friendly forms.
// Returns "" if nothing usable remains.
func SanitizeFileName(name string) string {
	// Drop any directory components the server may have sent
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	if folded, _, err := transform.String(foldDiacritics, name); err == nil {
		name = folded
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			// control characters
		case r == '/' || r == ':':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "." || cleaned == ".." {
		return ""
	}

	return cleaned
}
