package langres

import (
	"fmt"
	"strings"
)

// MissingResourceError indicates that the target language's resource
// document does not exist. The message doubles as the user-facing error
// line, so it keeps the wording build scripts already match on.
type MissingResourceError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("Language file not found: %s", e.Path)
}

// InvalidResourceError indicates that a target resource document parsed
// but lacks required top-level fields.
type InvalidResourceError struct {
	Path    string
	Missing []string
}

// Error implements the error interface.
func (e *InvalidResourceError) Error() string {
	return fmt.Sprintf("Invalid language file structure: %s (missing %s)", e.Path, strings.Join(e.Missing, ", "))
}
