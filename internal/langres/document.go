// Package langres loads, merges and resolves language resources: the JSON
// string documents and audio files that make up one language's assets,
// overlaid on a fallback base language.
package langres

import (
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New(validator.WithRequiredStructEnabled())

// LanguageField is a document's language entry. Generation checks only
// that the entry is present; when the value is a JSON string it is kept
// as a display name, and any other value is ignored.
type LanguageField struct {
	Name    string
	Present bool
}

// UnmarshalJSON marks the field present whatever the value is, string or
// not. It never fails; the value carries no meaning for generation.
func (f *LanguageField) UnmarshalJSON(data []byte) error {
	f.Present = true
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		f.Name = name
	}
	return nil
}

// Document is the on-disk shape of a locale's language.json.
type Document struct {
	Language LanguageField     `json:"language" validate:"required"`
	Strings  map[string]string `json:"strings" validate:"required"`
}

// ParseDocument decodes a language.json payload without imposing the
// structural requirements; those only apply to target documents.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CheckStructure verifies the fields a target document must carry: a
// language entry and a strings mapping. Only the language entry's
// presence matters; an empty strings object is valid, an absent one is
// not.
func (d *Document) CheckStructure() error {
	return validate.Struct(d)
}
