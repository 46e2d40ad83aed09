// Package transform cleans the raw post table and derives the feature
// table consumed by the KPI aggregator.
package transform

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/pulselab/linkpulse/pkg/types"
)

// Default sampling parameters. The scrape over-represents one topic by
// construction (keyword-search bias), so its rows are capped to keep every
// downstream aggregate from tilting toward it.
const (
	DefaultSampledTheme = "IA"
	DefaultSampleCap    = 220
)

// sentinelTheme marks malformed scrapes where two theme tags were
// concatenated. Such rows are dropped outright.
const sentinelTheme = "hackathonsport"

// themeAliases maps raw scrape-time theme labels to canonical categories.
// Unknown labels pass through unchanged.
var themeAliases = map[string]string{
	"DataScience":           "IA",
	"DataScienceInnovation": "IA",
	"Innovation":            "Technology",
	"Devoloppement":         "Technology",
}

// CleanOptions configures Clean.
type CleanOptions struct {
	SampledTheme string     // theme to cap; default DefaultSampledTheme
	SampleCap    int        // max rows kept for SampledTheme; default DefaultSampleCap
	Rand         *rand.Rand // sampling source; nil uses the global source
}

func (o CleanOptions) withDefaults() (CleanOptions, error) {
	if o.SampledTheme == "" {
		o.SampledTheme = DefaultSampledTheme
	}
	if o.SampleCap == 0 {
		o.SampleCap = DefaultSampleCap
	}
	if o.SampleCap < 0 {
		return o, fmt.Errorf("sample cap must be positive, got %d", o.SampleCap)
	}
	return o, nil
}

// Clean normalizes theme labels, drops sentinel rows, caps the
// over-represented theme by sampling without replacement, and returns the
// result sorted ascending by id. The input slice is not modified.
// Clean is idempotent: running it on already-clean data changes nothing
// as long as the capped theme is at or below the cap.
func Clean(posts []types.Post, opts CleanOptions) ([]types.Post, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	var sampled, rest []types.Post
	for _, p := range posts {
		if p.Theme == sentinelTheme {
			continue
		}
		if canonical, ok := themeAliases[p.Theme]; ok {
			p.Theme = canonical
		}
		if p.Theme == opts.SampledTheme {
			sampled = append(sampled, p)
		} else {
			rest = append(rest, p)
		}
	}

	if len(sampled) > opts.SampleCap {
		sampled = sampleWithoutReplacement(sampled, opts.SampleCap, opts.Rand)
	}

	cleaned := append(rest, sampled...)
	sort.Slice(cleaned, func(i, j int) bool { return cleaned[i].ID < cleaned[j].ID })
	return cleaned, nil
}

// sampleWithoutReplacement draws exactly n rows from posts.
func sampleWithoutReplacement(posts []types.Post, n int, rng *rand.Rand) []types.Post {
	perm := randPerm(len(posts), rng)
	out := make([]types.Post, n)
	for i := 0; i < n; i++ {
		out[i] = posts[perm[i]]
	}
	return out
}

func randPerm(n int, rng *rand.Rand) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	return rand.Perm(n)
}
