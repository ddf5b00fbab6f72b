package header

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kmarsden/langgen/internal/langcode"
	"github.com/kmarsden/langgen/internal/log"
)

// Sound is one audio entry to emit. Variant names the language whose copy
// backs the blob symbol; it is empty for common files, whose symbols carry
// no language segment.
type Sound struct {
	Name    string
	Variant string
}

// Input is everything the renderer needs for one header.
type Input struct {
	Language     string
	Base         string
	AudioExt     string
	Strings      map[string]string
	LangSounds   []Sound
	CommonSounds []Sound
}

// CollisionError reports distinct string keys that upper-case to the same
// constant name. Rendering refuses to pick a winner.
type CollisionError struct {
	Name string
	Keys []string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	quoted := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		quoted[i] = strconv.Quote(k)
	}
	return fmt.Sprintf("String key collision: %s map to the same constant %s", strings.Join(quoted, ", "), e.Name)
}

// Render produces the generated header bytes. Output is deterministic:
// identical inputs yield byte-identical output.
func Render(in Input) ([]byte, error) {
	stringsBlock, err := stringConstants(in.Strings)
	if err != nil {
		return nil, err
	}
	soundsBlock := soundConstants(in)

	data := struct {
		Language     string
		Base         string
		Marker       string
		StringsBlock string
		SoundsBlock  string
	}{
		Language:     in.Language,
		Base:         in.Base,
		Marker:       langcode.Marker(in.Language),
		StringsBlock: stringsBlock,
		SoundsBlock:  soundsBlock,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering header template: %w", err)
	}
	log.Debug(log.CatRender, "rendered header",
		"language", in.Language, "strings", len(in.Strings),
		"sounds", len(in.LangSounds)+len(in.CommonSounds), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// stringConstants renders the sorted string-constant block. Keys become
// upper-cased identifiers verbatim; values get embedded quotes escaped.
func stringConstants(strs map[string]string) (string, error) {
	byName := make(map[string][]string, len(strs))
	for key := range strs {
		byName[strings.ToUpper(key)] = append(byName[strings.ToUpper(key)], key)
	}

	var collided []string
	for name, keys := range byName {
		if len(keys) > 1 {
			collided = append(collided, name)
		}
	}
	if len(collided) > 0 {
		sort.Strings(collided)
		keys := byName[collided[0]]
		sort.Strings(keys)
		return "", &CollisionError{Name: collided[0], Keys: keys}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.ReplaceAll(strs[byName[name][0]], `"`, `\"`)
		lines = append(lines, fmt.Sprintf(`        constexpr const char* %s = "%s";`, name, value))
	}
	return strings.Join(lines, "\n"), nil
}

// soundConstants renders the language-bound block followed by the common
// block. Callers pass both slices already sorted by filename.
func soundConstants(in Input) string {
	prefix := strings.TrimPrefix(in.AudioExt, ".")
	if prefix == "" {
		prefix = "ogg"
	}

	entries := make([]string, 0, len(in.LangSounds)+len(in.CommonSounds))
	for _, s := range in.LangSounds {
		entries = append(entries, soundEntry(prefix, s))
	}
	for _, s := range in.CommonSounds {
		entries = append(entries, soundEntry(prefix, s))
	}
	return strings.Join(entries, "\n")
}

// soundEntry emits one boundary-symbol pair plus its string_view. The blob
// symbol embeds the selected variant for language-bound entries so the
// linker binds the right language's audio.
func soundEntry(prefix string, s Sound) string {
	blob := s.Name
	if s.Variant != "" {
		blob = langcode.Marker(s.Variant) + "_" + s.Name
	}
	return fmt.Sprintf(`
        extern const char %[1]s_%[2]s_start[] asm("_binary_%[3]s_%[1]s_start");
        extern const char %[1]s_%[2]s_end[] asm("_binary_%[3]s_%[1]s_end");
        static const std::string_view %[4]s_%[5]s {
        static_cast<const char*>(%[1]s_%[2]s_start),
        static_cast<size_t>(%[1]s_%[2]s_end - %[1]s_%[2]s_start)
        };`,
		prefix, s.Name, blob, strings.ToUpper(prefix), strings.ToUpper(s.Name))
}
