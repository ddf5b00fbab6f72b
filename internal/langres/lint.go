package langres

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Severity classifies a lint finding. Errors fail validation, warnings
// are informational.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one issue discovered while linting a locale document.
type Finding struct {
	Severity Severity
	Key      string
	Message  string
}

// LintOptions tunes a lint run. BaseStrings enables the missing-key
// check; MaxValueGraphemes zero disables the length check.
type LintOptions struct {
	BaseStrings       map[string]string
	MaxValueGraphemes int
}

// identPattern matches keys whose upper-cased form is a usable constant
// identifier in the generated header.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Lint inspects one locale document for problems that would break or
// degrade header generation. Findings come back in a deterministic
// order: identifier problems, constant collisions, value problems, then
// keys missing relative to the base language.
func Lint(doc *Document, opts LintOptions) []Finding {
	var findings []Finding

	keys := make([]string, 0, len(doc.Strings))
	for k := range doc.Strings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !identPattern.MatchString(key) {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Key:      key,
				Message:  fmt.Sprintf("key %q cannot form a constant identifier", key),
			})
		}
	}

	byName := make(map[string][]string, len(keys))
	for _, key := range keys {
		name := strings.ToUpper(key)
		byName[name] = append(byName[name], key)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		group := byName[name]
		if len(group) < 2 {
			continue
		}
		quoted := make([]string, len(group))
		for i, k := range group {
			quoted[i] = strconv.Quote(k)
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			Key:      group[0],
			Message:  fmt.Sprintf("keys %s collide as constant %s", strings.Join(quoted, ", "), name),
		})
	}

	for _, key := range keys {
		value := doc.Strings[key]
		if value == "" {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Key:      key,
				Message:  fmt.Sprintf("key %q has an empty value", key),
			})
			continue
		}
		if opts.MaxValueGraphemes > 0 {
			if n := uniseg.GraphemeClusterCount(value); n > opts.MaxValueGraphemes {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Key:      key,
					Message:  fmt.Sprintf("value of %q is %d graphemes (limit %d)", key, n, opts.MaxValueGraphemes),
				})
			}
		}
	}

	var missing []string
	for key := range opts.BaseStrings {
		if _, ok := doc.Strings[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	for _, key := range missing {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Key:      key,
			Message:  fmt.Sprintf("key %q missing, falls back to base", key),
		})
	}

	return findings
}

// HasErrors reports whether any finding is severe enough to fail
// validation.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
