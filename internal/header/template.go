// Package header renders the generated C++ language header: string
// constants and audio-blob view constants inside a fixed namespace
// skeleton.
package header

import (
	_ "embed"
	"text/template"
)

// headerTemplate is the fixed skeleton the generated file follows. The
// comment text inside it is part of the emitted artifact and must stay
// byte-stable; downstream builds diff the generated header.
//
//go:embed lang_config.h.tmpl
var headerTemplate string

var tmpl = template.Must(template.New("lang_config.h").Parse(headerTemplate))
