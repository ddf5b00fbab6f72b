package langres

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kmarsden/langgen/internal/assets"
	"github.com/kmarsden/langgen/internal/header"
	"github.com/kmarsden/langgen/internal/log"
)

const tracerName = "github.com/kmarsden/langgen/internal/langres"

// Request describes one header-generation run.
type Request struct {
	Language  string
	Output    string
	AssetsDir string // explicit assets root; empty derives it from Output
	SkipWrite bool   // render without touching the output file
}

// Result carries everything a run produced.
type Result struct {
	Language     string
	Output       string
	InputFile    string
	AssetsRoot   string
	DerivedRoot  bool
	BaseLoaded   bool
	StringStats  MergeStats
	SoundStats   SoundStats
	FallbackKeys []string // string keys taken from the base language, sorted
	LangSounds   []SoundEntry
	CommonSounds []SoundEntry
	Rendered     []byte
}

// Compiler runs the generation pipeline: locate resources, merge against
// the base language, resolve audio, render and write the header.
type Compiler struct {
	BaseLanguage string
	AudioExt     string
	Out          io.Writer // progress output; the CLI passes stdout
}

// NewCompiler returns a Compiler with the given fallback language and
// audio extension. Empty values fall back to "en-US" and ".ogg"; a nil
// out discards progress output.
func NewCompiler(baseLanguage, audioExt string, out io.Writer) *Compiler {
	if baseLanguage == "" {
		baseLanguage = "en-US"
	}
	if audioExt == "" {
		audioExt = ".ogg"
	}
	if out == nil {
		out = io.Discard
	}
	return &Compiler{BaseLanguage: baseLanguage, AudioExt: audioExt, Out: out}
}

// Compile runs the pipeline for one language. All fatal conditions come
// back as errors; the caller decides how to report them.
func (c *Compiler) Compile(ctx context.Context, req Request) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "compile", trace.WithAttributes(
		attribute.String("language", req.Language),
		attribute.String("output", req.Output),
	))
	defer span.End()

	fmt.Fprintf(c.Out, "Processing language: %s\n", req.Language)

	layout, derived, err := c.ResolveLayout(req)
	if err != nil {
		return nil, err
	}

	inputFile := layout.LanguageFile(req.Language)
	fmt.Fprintf(c.Out, "Input file path: %s\n", inputFile)
	fmt.Fprintf(c.Out, "Output file path: %s\n", req.Output)

	base, err := c.loadBase(ctx, layout)
	if err != nil {
		return nil, err
	}

	target, err := c.loadTarget(ctx, inputFile)
	if err != nil {
		return nil, err
	}

	merged, stringStats := c.mergeStrings(ctx, base.Strings, target.Strings)
	c.printStringStats(req.Language, stringStats)

	fallbackKeys := make([]string, 0, stringStats.Fallback)
	for k := range merged {
		if _, ok := target.Strings[k]; !ok {
			fallbackKeys = append(fallbackKeys, k)
		}
	}
	sort.Strings(fallbackKeys)

	langSounds, commonSounds, soundStats, err := c.resolveSounds(ctx, layout, req.Language)
	if err != nil {
		return nil, err
	}
	c.printSoundStats(req.Language, soundStats)

	rendered, err := c.render(ctx, req.Language, merged, langSounds, commonSounds)
	if err != nil {
		return nil, err
	}

	if !req.SkipWrite {
		if err := c.write(ctx, req.Output, rendered); err != nil {
			return nil, err
		}
	}

	return &Result{
		Language:     req.Language,
		Output:       req.Output,
		InputFile:    inputFile,
		AssetsRoot:   layout.Root(),
		DerivedRoot:  derived,
		BaseLoaded:   base.Loaded,
		StringStats:  stringStats,
		SoundStats:   soundStats,
		FallbackKeys: fallbackKeys,
		LangSounds:   langSounds,
		CommonSounds: commonSounds,
		Rendered:     rendered,
	}, nil
}

// ResolveLayout picks the assets root for a request. An explicit root
// must exist; a derived root is taken on faith so that a bad derivation
// surfaces as the familiar missing-language-file error, not a new one.
// The returned bool reports whether the root was derived.
func (c *Compiler) ResolveLayout(req Request) (assets.Layout, bool, error) {
	if req.AssetsDir != "" {
		layout, err := assets.New(req.AssetsDir)
		return layout, false, err
	}
	root := assets.DeriveRoot(req.Output)
	log.Warn(log.CatConfig, "assets root derived from output path", "root", root, "output", req.Output)
	return assets.At(root), true, nil
}

func (c *Compiler) loadBase(ctx context.Context, layout assets.Layout) (BaseResult, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "load_base")
	defer span.End()

	res, err := LoadBase(layout.LanguageFile(c.BaseLanguage))
	if err != nil {
		span.RecordError(err)
		return BaseResult{}, err
	}
	switch {
	case res.Loaded:
		fmt.Fprintf(c.Out, "Loaded base language %s with %d strings\n", c.BaseLanguage, len(res.Strings))
	case res.Missing:
		fmt.Fprintf(c.Out, "Warning: %s base language file not found, fallback mechanism disabled\n", c.BaseLanguage)
	case res.ParseErr != nil:
		fmt.Fprintf(c.Out, "Warning: Failed to parse %s language file: %v\n", c.BaseLanguage, res.ParseErr)
	}
	span.SetAttributes(attribute.Int("strings", len(res.Strings)), attribute.Bool("loaded", res.Loaded))
	return res, nil
}

func (c *Compiler) loadTarget(ctx context.Context, path string) (*Document, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "load_target")
	defer span.End()

	doc, err := LoadTarget(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("strings", len(doc.Strings)))
	return doc, nil
}

func (c *Compiler) mergeStrings(ctx context.Context, base, target map[string]string) (map[string]string, MergeStats) {
	_, span := otel.Tracer(tracerName).Start(ctx, "merge_strings")
	defer span.End()

	merged, stats := MergeStrings(base, target)
	span.SetAttributes(attribute.Int("total", stats.Total), attribute.Int("fallback", stats.Fallback))
	return merged, stats
}

func (c *Compiler) resolveSounds(ctx context.Context, layout assets.Layout, targetCode string) ([]SoundEntry, []SoundEntry, SoundStats, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "resolve_sounds")
	defer span.End()

	lang, common, stats, err := ResolveSounds(layout, c.BaseLanguage, targetCode, c.AudioExt)
	if err != nil {
		span.RecordError(err)
		return nil, nil, stats, err
	}
	span.SetAttributes(attribute.Int("language_bound", len(lang)), attribute.Int("common", len(common)))
	return lang, common, stats, nil
}

func (c *Compiler) render(ctx context.Context, code string, strs map[string]string, lang, common []SoundEntry) ([]byte, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "render")
	defer span.End()

	rendered, err := header.Render(header.Input{
		Language:     code,
		Base:         c.BaseLanguage,
		AudioExt:     c.AudioExt,
		Strings:      strs,
		LangSounds:   toHeaderSounds(lang),
		CommonSounds: toHeaderSounds(common),
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("bytes", len(rendered)))
	return rendered, nil
}

func (c *Compiler) write(ctx context.Context, path string, data []byte) error {
	_, span := otel.Tracer(tracerName).Start(ctx, "write")
	defer span.End()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (c *Compiler) printStringStats(code string, s MergeStats) {
	fmt.Fprintf(c.Out, "Language %s string statistics:\n", code)
	fmt.Fprintf(c.Out, "  - Base language (%s): %d strings\n", c.BaseLanguage, s.Base)
	fmt.Fprintf(c.Out, "  - User language: %d strings\n", s.Target)
	fmt.Fprintf(c.Out, "  - Total: %d strings\n", s.Total)
	if s.Fallback > 0 {
		fmt.Fprintf(c.Out, "  - Fallback to %s: %d strings\n", c.BaseLanguage, s.Fallback)
	}
}

func (c *Compiler) printSoundStats(code string, s SoundStats) {
	fmt.Fprintf(c.Out, "Language %s sound statistics:\n", code)
	fmt.Fprintf(c.Out, "  - Base language (%s): %d sounds\n", c.BaseLanguage, s.Base)
	fmt.Fprintf(c.Out, "  - User language: %d sounds\n", s.Target)
	fmt.Fprintf(c.Out, "  - Common sounds: %d sounds\n", s.Common)
	if s.Fallback > 0 {
		fmt.Fprintf(c.Out, "  - Sound fallback to %s: %d sounds\n", c.BaseLanguage, s.Fallback)
	}
}

func toHeaderSounds(entries []SoundEntry) []header.Sound {
	sounds := make([]header.Sound, len(entries))
	for i, e := range entries {
		sounds[i] = header.Sound{Name: e.Name, Variant: e.Variant}
	}
	return sounds
}
