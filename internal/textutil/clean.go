package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanOptions controls optional post-processing of recognized line text
// before it is merged into blocks.
type CleanOptions struct {
	NormalizeForm      string // "NFC", "NFKC", "NFD", "NFKD", "" to disable
	CollapseWhitespace bool   // collapse runs of whitespace to a single space
	Trim               bool   // trim leading/trailing whitespace
	RemoveControlChars bool   // strip non-printable control characters
}

// DefaultCleanOptions returns sensible defaults for OCR line text.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		NormalizeForm:      "NFC",
		CollapseWhitespace: true,
		Trim:               true,
		RemoveControlChars: true,
	}
}

// Clean applies normalization and cleaning to a recognized line.
func Clean(s string, opts CleanOptions) string {
	if s == "" {
		return s
	}
	s = applyNormalization(s, opts.NormalizeForm)
	if opts.RemoveControlChars {
		s = removeControlChars(s)
	}
	if opts.CollapseWhitespace {
		s = collapseWhitespace(s)
	}
	if opts.Trim {
		s = strings.TrimSpace(s)
	}
	return s
}

func applyNormalization(s, form string) string {
	switch strings.ToUpper(form) {
	case "NFC":
		return norm.NFC.String(s)
	case "NFKC":
		return norm.NFKC.String(s)
	case "NFD":
		return norm.NFD.String(s)
	case "NFKD":
		return norm.NFKD.String(s)
	}
	return s
}

func removeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		inSpace = false
		sb.WriteRune(r)
	}
	if inSpace && sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	return sb.String()
}
