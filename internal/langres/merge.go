package langres

import "github.com/kmarsden/langgen/internal/log"

// MergeStats reports the string-merge arithmetic for one run. The counts
// are informational only; nothing branches on them.
type MergeStats struct {
	Base     int
	Target   int
	Total    int
	Fallback int
}

// MergeStrings overlays target onto base: every base key survives unless
// the target overrides it, every target key is present. Neither input map
// is mutated.
func MergeStrings(base, target map[string]string) (map[string]string, MergeStats) {
	merged := make(map[string]string, len(base)+len(target))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range target {
		merged[k] = v
	}

	stats := MergeStats{
		Base:     len(base),
		Target:   len(target),
		Total:    len(merged),
		Fallback: len(merged) - len(target),
	}
	log.Debug(log.CatMerge, "merged strings",
		"base", stats.Base, "target", stats.Target, "total", stats.Total, "fallback", stats.Fallback)
	return merged, stats
}
