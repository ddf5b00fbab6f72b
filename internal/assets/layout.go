// Package assets resolves the on-disk layout of an assets tree: where
// locale resources and shared audio live relative to one assets root.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	localesDirName   = "locales"
	commonDirName    = "common"
	resourceFileName = "language.json"
	derivedDirName   = "assets"
)

// Layout addresses the locale and audio directories under one assets root.
type Layout struct {
	root string
}

// New validates root and returns a Layout for it. The root must exist and
// be a directory.
func New(root string) (Layout, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Layout{}, fmt.Errorf("assets root %s: %w", root, err)
	}
	if !info.IsDir() {
		return Layout{}, fmt.Errorf("assets root %s is not a directory", root)
	}
	return At(root), nil
}

// At returns a Layout rooted at dir without checking that it exists.
// Derived roots use this; their absence surfaces later as a missing
// target resource rather than as a root error.
func At(dir string) Layout {
	return Layout{root: dir}
}

// DeriveRoot infers the assets root from an output header path, following
// the build convention that the header lives inside the assets directory:
// main/assets/lang_config.h → main/assets. For an output outside an assets
// directory the root is an assets sibling of the output file.
func DeriveRoot(outputPath string) string {
	dir := filepath.Dir(outputPath)
	if filepath.Base(dir) == derivedDirName {
		dir = filepath.Dir(dir)
	}
	return filepath.Join(dir, derivedDirName)
}

// Root returns the assets root directory.
func (l Layout) Root() string { return l.root }

// LocalesDir returns the directory holding per-language subdirectories.
func (l Layout) LocalesDir() string { return filepath.Join(l.root, localesDirName) }

// CommonDir returns the directory holding audio shared by all languages.
func (l Layout) CommonDir() string { return filepath.Join(l.root, commonDirName) }

// LanguageDir returns the resource directory for a language code.
func (l Layout) LanguageDir(code string) string {
	return filepath.Join(l.LocalesDir(), code)
}

// LanguageFile returns the path of a language's JSON resource document.
func (l Layout) LanguageFile(code string) string {
	return filepath.Join(l.LanguageDir(code), resourceFileName)
}

// DetectLanguages lists the locale codes under locales/ that carry a
// language.json, sorted by code. A missing locales directory yields an
// empty list.
func (l Layout) DetectLanguages() ([]string, error) {
	entries, err := os.ReadDir(l.LocalesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading locales directory: %w", err)
	}

	// os.ReadDir returns entries sorted by filename.
	var codes []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.LocalesDir(), entry.Name(), resourceFileName)); err != nil {
			continue
		}
		codes = append(codes, entry.Name())
	}
	return codes, nil
}
