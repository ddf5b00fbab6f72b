// Package langcode validates and transforms language codes like "en-US"
// or "zh-CN".
package langcode

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Check reports whether code is a well-formed language tag. Unknown but
// well-formed subtags are accepted; locale directories are free to use
// private codes.
func Check(code string) error {
	if code == "" {
		return errors.New("empty language code")
	}
	if _, err := language.Parse(code); err != nil {
		var verr language.ValueError
		if errors.As(err, &verr) {
			return nil
		}
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return nil
}

// Canonical returns the BCP 47 canonical spelling of code, e.g.
// "zh-cn" → "zh-CN". Used for display only; directory lookups always use
// the code as given.
func Canonical(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		var verr language.ValueError
		if !errors.As(err, &verr) {
			return "", fmt.Errorf("invalid language code %q: %w", code, err)
		}
	}
	return tag.String(), nil
}

// Marker lowers the code and joins its subtags with underscores, the form
// used for the header's default-language marker and for blob symbol
// variants: "zh-CN" → "zh_cn".
func Marker(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "-", "_"))
}
