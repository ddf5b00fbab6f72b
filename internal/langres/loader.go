package langres

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kmarsden/langgen/internal/log"
)

// BaseResult is the outcome of loading the base language. Base problems
// are never fatal; a missing or unparseable base simply disables fallback
// for the run.
type BaseResult struct {
	Strings  map[string]string
	Loaded   bool
	Missing  bool
	ParseErr error
}

// LoadBase reads the base language document at path. Absence and parse
// failures are reported in the result rather than as errors; only a hard
// read failure on an existing file is returned.
func LoadBase(path string) (BaseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn(log.CatLoader, "base language file not found", "path", path)
			return BaseResult{Strings: map[string]string{}, Missing: true}, nil
		}
		return BaseResult{}, fmt.Errorf("reading base language file %s: %w", path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		log.Warn(log.CatLoader, "base language file unparseable", "path", path, "error", err.Error())
		return BaseResult{Strings: map[string]string{}, ParseErr: err}, nil
	}

	strs := doc.Strings
	if strs == nil {
		strs = map[string]string{}
	}
	log.Debug(log.CatLoader, "loaded base language", "path", path, "strings", len(strs))
	return BaseResult{Strings: strs, Loaded: true}, nil
}

// LoadTarget reads and structurally validates the target language document
// at path. Every failure here is fatal for the run.
func LoadTarget(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingResourceError{Path: path}
		}
		return nil, fmt.Errorf("reading language file %s: %w", path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing language file %s: %w", path, err)
	}

	if err := doc.CheckStructure(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
			return nil, &InvalidResourceError{Path: path, Missing: missing}
		}
		return nil, fmt.Errorf("validating language file %s: %w", path, err)
	}

	log.Debug(log.CatLoader, "loaded target language", "path", path, "language", doc.Language.Name, "strings", len(doc.Strings))
	return doc, nil
}
