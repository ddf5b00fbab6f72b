package langres

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kmarsden/langgen/internal/assets"
	"github.com/kmarsden/langgen/internal/log"
)

// SoundEntry is one resolved audio file. Variant names the language whose
// physical copy was selected; it is empty for files from the common
// directory, which belong to no language.
type SoundEntry struct {
	File    string // filename including the audio extension
	Name    string // filename with the audio extension stripped
	Variant string
}

// SoundStats reports the audio-resolution arithmetic for one run.
type SoundStats struct {
	Base     int
	Target   int
	Common   int
	Fallback int // base files with no same-named target copy
}

// ResolveSounds scans the base, target and common audio directories and
// resolves the fallback union. The language-bound entries are the union of
// base and target files, each attributed to the target when its own
// directory has the file and to the base otherwise. Common entries are
// kept separate. Both slices come back sorted by filename. Missing
// directories contribute empty sets.
func ResolveSounds(layout assets.Layout, baseCode, targetCode, ext string) (lang, common []SoundEntry, stats SoundStats, err error) {
	baseFiles, err := listAudio(layout.LanguageDir(baseCode), ext)
	if err != nil {
		return nil, nil, stats, err
	}
	targetFiles, err := listAudio(layout.LanguageDir(targetCode), ext)
	if err != nil {
		return nil, nil, stats, err
	}
	commonFiles, err := listAudio(layout.CommonDir(), ext)
	if err != nil {
		return nil, nil, stats, err
	}

	targetSet := make(map[string]bool, len(targetFiles))
	for _, f := range targetFiles {
		targetSet[f] = true
	}
	unionSet := make(map[string]bool, len(baseFiles)+len(targetFiles))
	for _, f := range baseFiles {
		unionSet[f] = true
	}
	for _, f := range targetFiles {
		unionSet[f] = true
	}
	union := make([]string, 0, len(unionSet))
	for f := range unionSet {
		union = append(union, f)
	}
	sort.Strings(union)

	lang = make([]SoundEntry, 0, len(union))
	for _, f := range union {
		variant := targetCode
		if !targetSet[f] {
			variant = baseCode
		}
		lang = append(lang, SoundEntry{File: f, Name: strings.TrimSuffix(f, ext), Variant: variant})
	}

	common = make([]SoundEntry, 0, len(commonFiles))
	for _, f := range commonFiles {
		common = append(common, SoundEntry{File: f, Name: strings.TrimSuffix(f, ext)})
	}

	stats = SoundStats{
		Base:   len(baseFiles),
		Target: len(targetFiles),
		Common: len(commonFiles),
	}
	for _, f := range baseFiles {
		if !targetSet[f] {
			stats.Fallback++
		}
	}

	log.Debug(log.CatSound, "resolved sounds",
		"base", stats.Base, "target", stats.Target, "common", stats.Common, "fallback", stats.Fallback)
	return lang, common, stats, nil
}

// listAudio returns the audio filenames directly inside dir, sorted. A
// missing directory yields an empty list.
func listAudio(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug(log.CatSound, "audio directory absent", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}
