package langres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLint_CleanDocument(t *testing.T) {
	doc := &Document{
		Strings: map[string]string{"greeting": "Bonjour", "farewell": "Au revoir"},
	}

	findings := Lint(doc, LintOptions{MaxValueGraphemes: 200})

	assert.Empty(t, findings)
	assert.False(t, HasErrors(findings))
}

func TestLint_IdentifierUnsafeKey(t *testing.T) {
	doc := &Document{
		Strings: map[string]string{"ok_key": "fine", "bad-key": "x", "1st": "y"},
	}

	findings := Lint(doc, LintOptions{})

	require.Len(t, findings, 2)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Equal(t, "1st", findings[0].Key)
	assert.Equal(t, "bad-key", findings[1].Key)
	assert.True(t, HasErrors(findings))
}

func TestLint_ConstantCollision(t *testing.T) {
	doc := &Document{
		Strings: map[string]string{"greeting": "a", "GREETING": "b"},
	}

	findings := Lint(doc, LintOptions{})

	require.Len(t, findings, 1)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, `"GREETING"`)
	assert.Contains(t, findings[0].Message, `"greeting"`)
	assert.Contains(t, findings[0].Message, "collide as constant GREETING")
}

func TestLint_EmptyValue(t *testing.T) {
	doc := &Document{
		Strings: map[string]string{"greeting": ""},
	}

	findings := Lint(doc, LintOptions{})

	require.Len(t, findings, 1)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "empty value")
	assert.False(t, HasErrors(findings))
}

func TestLint_OverlongValueCountsGraphemes(t *testing.T) {
	// Three CJK characters are three graphemes; byte or rune counting
	// would give different numbers.
	doc := &Document{
		Strings: map[string]string{"title": "你好吗"},
	}

	findings := Lint(doc, LintOptions{MaxValueGraphemes: 2})
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "3 graphemes (limit 2)")

	assert.Empty(t, Lint(doc, LintOptions{MaxValueGraphemes: 3}))
}

func TestLint_GraphemesNotRunes(t *testing.T) {
	// A skin-tone emoji is one grapheme built from two runes.
	doc := &Document{
		Strings: map[string]string{"reaction": "\U0001F44D\U0001F3FD"},
	}

	assert.Empty(t, Lint(doc, LintOptions{MaxValueGraphemes: 1}))
}

func TestLint_ZeroLimitDisablesLengthCheck(t *testing.T) {
	doc := &Document{
		Strings: map[string]string{"novel": strings.Repeat("a", 10000)},
	}

	assert.Empty(t, Lint(doc, LintOptions{MaxValueGraphemes: 0}))
}

func TestLint_MissingKeysRelativeToBase(t *testing.T) {
	doc := &Document{
		Strings: map[string]string{"greeting": "Bonjour"},
	}
	base := map[string]string{"greeting": "Hello", "farewell": "Bye", "title": "Hi"}

	findings := Lint(doc, LintOptions{BaseStrings: base})

	require.Len(t, findings, 2)
	assert.Equal(t, "farewell", findings[0].Key)
	assert.Equal(t, "title", findings[1].Key)
	for _, f := range findings {
		assert.Equal(t, SeverityWarning, f.Severity)
		assert.Contains(t, f.Message, "falls back to base")
	}
	assert.False(t, HasErrors(findings))
}

func TestProperty_CleanInputsLintClean(t *testing.T) {
	keyGen := rapid.StringMatching(`[a-z][a-z0-9_]{0,11}`)

	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfNDistinct(keyGen, 0, 8,
			func(s string) string { return strings.ToUpper(s) },
		).Draw(t, "keys")

		strs := make(map[string]string, len(keys))
		for _, k := range keys {
			strs[k] = rapid.StringMatching(`[a-z ]{1,20}`).Draw(t, "value")
		}

		doc := &Document{Strings: strs}
		require.Empty(t, Lint(doc, LintOptions{MaxValueGraphemes: 0}))
	})
}
