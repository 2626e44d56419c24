package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ErrRequired reports a blank required field.
var ErrRequired = errors.New("required field missing")

// Required fails with ErrRequired when any value is blank after trimming.
func Required(vals ...string) error {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return ErrRequired
		}
	}
	return nil
}

// Slugify folds accents and collapses everything else to dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
