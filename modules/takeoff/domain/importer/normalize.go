package importer

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Normalization never fails; it only canonicalizes. Empty-after-normalization
// values are the validator's concern. Every function here is idempotent.

// NormalizeLabel canonicalizes names compared across rows and against the
// store: trimmed, uppercased, internal whitespace collapsed.
func NormalizeLabel(s string) string {
	return strings.ToUpper(collapseWhitespace(strings.TrimSpace(s)))
}

// NormalizeDrawing canonicalizes a drawing reference: uppercase, collapsed
// whitespace and separator runs, leading zeros stripped from numeric
// segments. Sheet suffixes ("1 OF 2") are part of the identity and survive
// normalization; "P-91010 1 OF 2" and "P-91010 2 OF 2" stay distinct.
func NormalizeDrawing(s string) string {
	t := NormalizeLabel(s)
	if t == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(t))
	i := 0
	lastSep := false
	for i < len(t) {
		c := t[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(t) && t[j] >= '0' && t[j] <= '9' {
				j++
			}
			b.WriteString(stripLeadingZeros(t[i:j]))
			i = j
			lastSep = false
		case c == '-' || c == '_' || c == '/':
			// collapse separator runs to a single dash
			for i < len(t) && (t[i] == '-' || t[i] == '_' || t[i] == '/') {
				i++
			}
			if !lastSep && b.Len() > 0 && i < len(t) {
				b.WriteByte('-')
				lastSep = true
			}
		default:
			b.WriteByte(c)
			i++
			lastSep = false
		}
	}
	return strings.TrimSpace(b.String())
}

var inchSuffixes = []string{`"`, "INCHES", "INCH", "IN"}

// NormalizeSize collapses fractional and decimal inch notations onto one
// canonical decimal representation: `1/2"`, "0.5", ".50 in" all become
// "0.5"; `1-1/2` and "1.5" both become "1.5". A unit suffix is only
// stripped when what precedes it is a number, so labels like "MAIN" or
// "RESIN" pass through untouched. Values that do not parse as inch sizes
// are label-normalized unchanged.
func NormalizeSize(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	upper := strings.ToUpper(t)

	if d, ok := parseInches(upper); ok {
		return d.String()
	}
	for _, suffix := range inchSuffixes {
		trimmed := strings.TrimSpace(strings.TrimSuffix(upper, suffix))
		if trimmed == upper || trimmed == "" {
			continue
		}
		if d, ok := parseInches(trimmed); ok {
			return d.String()
		}
	}
	return NormalizeLabel(upper)
}

// parseInches understands "2", "2.5", "1/2", "1 1/2" and "1-1/2".
func parseInches(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	whole := s
	frac := ""
	if idx := strings.LastIndexAny(s, " -"); idx > 0 && strings.Contains(s[idx+1:], "/") {
		whole = strings.TrimSpace(s[:idx])
		frac = strings.TrimSpace(s[idx+1:])
	} else if strings.Contains(s, "/") {
		whole = ""
		frac = s
	}

	total := decimal.Zero
	if whole != "" {
		d, err := decimal.NewFromString(whole)
		if err != nil {
			return decimal.Zero, false
		}
		total = d
	}
	if frac != "" {
		parts := strings.Split(frac, "/")
		if len(parts) != 2 {
			return decimal.Zero, false
		}
		num, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			return decimal.Zero, false
		}
		den, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil || den.IsZero() {
			return decimal.Zero, false
		}
		total = total.Add(num.Div(den))
	}
	return total, true
}

func stripLeadingZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
