package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveRoot_OutputInsideAssetsDir(t *testing.T) {
	// The conventional shape: header generated into main/assets.
	result := DeriveRoot(filepath.FromSlash("main/assets/lang_config.h"))
	require.Equal(t, filepath.FromSlash("main/assets"), result)
}

func TestDeriveRoot_OutputOutsideAssetsDir(t *testing.T) {
	// Header next to the assets directory rather than inside it.
	result := DeriveRoot(filepath.FromSlash("main/lang_config.h"))
	require.Equal(t, filepath.FromSlash("main/assets"), result)
}

func TestDeriveRoot_TableDriven(t *testing.T) {
	testCases := []struct {
		name     string
		output   string
		expected string
	}{
		{"conventional layout", "project/main/assets/lang_config.h", "project/main/assets"},
		{"absolute conventional", "/home/user/fw/main/assets/lang_config.h", "/home/user/fw/main/assets"},
		{"sibling layout", "project/main/lang_config.h", "project/main/assets"},
		{"bare filename", "lang_config.h", "assets"},
		{"nested assets", "a/assets/b/lang_config.h", "a/assets/b/assets"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := filepath.FromSlash(tc.output)
			expected := filepath.FromSlash(tc.expected)
			require.Equal(t, expected, DeriveRoot(output))
		})
	}
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestAt_DoesNotValidate(t *testing.T) {
	layout := At(filepath.FromSlash("/nonexistent/assets"))
	require.Equal(t, filepath.FromSlash("/nonexistent/assets"), layout.Root())
}

func TestNew_RootIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "assets")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := New(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a directory")
}

func TestLayout_Paths(t *testing.T) {
	tmpDir := t.TempDir()
	layout, err := New(tmpDir)
	require.NoError(t, err)

	require.Equal(t, tmpDir, layout.Root())
	require.Equal(t, filepath.Join(tmpDir, "locales"), layout.LocalesDir())
	require.Equal(t, filepath.Join(tmpDir, "common"), layout.CommonDir())
	require.Equal(t, filepath.Join(tmpDir, "locales", "zh-CN"), layout.LanguageDir("zh-CN"))
	require.Equal(t, filepath.Join(tmpDir, "locales", "zh-CN", "language.json"), layout.LanguageFile("zh-CN"))
}

func TestDetectLanguages(t *testing.T) {
	tmpDir := t.TempDir()
	for _, code := range []string{"zh-CN", "en-US", "ja-JP"} {
		dir := filepath.Join(tmpDir, "locales", code)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "language.json"), []byte(`{}`), 0644))
	}
	// Directory without a resource document is not a locale.
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "locales", "fonts"), 0755))
	// Stray file in locales/ is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "locales", "README"), []byte("x"), 0644))

	layout, err := New(tmpDir)
	require.NoError(t, err)

	codes, err := layout.DetectLanguages()
	require.NoError(t, err)
	require.Equal(t, []string{"en-US", "ja-JP", "zh-CN"}, codes)
}

func TestDetectLanguages_NoLocalesDir(t *testing.T) {
	layout, err := New(t.TempDir())
	require.NoError(t, err)

	codes, err := layout.DetectLanguages()
	require.NoError(t, err)
	require.Empty(t, codes)
}
