package kpi

import (
	"sort"
	"strings"

	"github.com/pulselab/linkpulse/internal/stats"
	"github.com/pulselab/linkpulse/pkg/types"
)

// EncodeEngagement reclassifies every row's engagement category against the
// engagement-total quantile of this exact input. This is deliberately a
// second recomputation site: the tier is always "top decile of whatever
// population is being looked at", so re-running it over a subset yields a
// subset-relative cut, not the transform-time one.
func EncodeEngagement(rows []types.FeatureRow, quantile float64) []types.FeatureRow {
	if len(rows) == 0 {
		return nil
	}
	engagement := make([]float64, len(rows))
	for i, r := range rows {
		engagement[i] = float64(r.EngagementTotal)
	}
	threshold := stats.Quantile(engagement, quantile)

	out := make([]types.FeatureRow, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].EngagementCategory = types.EngagementLow
		if float64(out[i].EngagementTotal) >= threshold {
			out[i].EngagementCategory = types.EngagementHigh
		}
	}
	return out
}

// Viral returns the viral population: rows flagged at transform time.
func Viral(rows []types.FeatureRow) []types.FeatureRow {
	var out []types.FeatureRow
	for _, r := range rows {
		if r.IsViral {
			out = append(out, r)
		}
	}
	return out
}

// HighEngagement returns the "Fort" population of an encoded table.
func HighEngagement(rows []types.FeatureRow) []types.FeatureRow {
	var out []types.FeatureRow
	for _, r := range rows {
		if r.EngagementCategory == types.EngagementHigh {
			out = append(out, r)
		}
	}
	return out
}

// Volume counts the whole table and its two key populations.
func Volume(rows, fort, viral []types.FeatureRow) types.VolumeSummary {
	return types.VolumeSummary{
		TotalPosts:          len(rows),
		HighEngagementPosts: len(fort),
		ViralPosts:          len(viral),
	}
}

// TierProfile summarizes text length per engagement category, ordered by
// category label ascending.
func TierProfile(rows []types.FeatureRow) []types.TierProfileRow {
	groups := map[types.EngagementCategory][]float64{}
	for _, r := range rows {
		groups[r.EngagementCategory] = append(groups[r.EngagementCategory], float64(r.TextLength))
	}

	out := make([]types.TierProfileRow, 0, len(groups))
	for cat, lengths := range groups {
		out = append(out, types.TierProfileRow{
			Category:         cat,
			MeanTextLength:   stats.Mean(lengths),
			MedianTextLength: stats.Median(lengths),
			StdTextLength:    stats.StdDev(lengths),
			Count:            len(lengths),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// ViralityProfile summarizes text length and audience per virality flag,
// non-viral first.
func ViralityProfile(rows []types.FeatureRow) []types.ViralityProfileRow {
	type acc struct {
		lengths   []float64
		followers []float64
	}
	groups := map[bool]*acc{}
	for _, r := range rows {
		a := groups[r.IsViral]
		if a == nil {
			a = &acc{}
			groups[r.IsViral] = a
		}
		a.lengths = append(a.lengths, float64(r.TextLength))
		a.followers = append(a.followers, float64(r.Followers))
	}

	var out []types.ViralityProfileRow
	for _, viral := range []bool{false, true} {
		a, ok := groups[viral]
		if !ok {
			continue
		}
		out = append(out, types.ViralityProfileRow{
			IsViral:          viral,
			MeanTextLength:   stats.Mean(a.lengths),
			MedianTextLength: stats.Median(a.lengths),
			StdTextLength:    stats.StdDev(a.lengths),
			Count:            len(a.lengths),
			MeanFollowers:    stats.Mean(a.followers),
		})
	}
	return out
}

// HashtagImpact relates hashtag count to engagement and shares, ascending
// by hashtag count, truncated to limit rows.
func HashtagImpact(rows []types.FeatureRow, limit int) []types.HashtagImpactRow {
	type acc struct {
		engagement []float64
		shares     []float64
	}
	groups := map[int]*acc{}
	for _, r := range rows {
		a := groups[r.NbrHashtags]
		if a == nil {
			a = &acc{}
			groups[r.NbrHashtags] = a
		}
		a.engagement = append(a.engagement, float64(r.EngagementTotal))
		a.shares = append(a.shares, float64(r.Shares))
	}

	out := make([]types.HashtagImpactRow, 0, len(groups))
	for n, a := range groups {
		out = append(out, types.HashtagImpactRow{
			NbrHashtags:      n,
			MeanEngagement:   stats.Mean(a.engagement),
			MedianEngagement: stats.Median(a.engagement),
			MeanShares:       stats.Mean(a.shares),
			MedianShares:     stats.Median(a.shares),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NbrHashtags < out[j].NbrHashtags })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopHashtags counts lower-cased hashtag occurrences across a population,
// descending by count with ties broken by tag ascending, truncated to
// limit rows.
func TopHashtags(rows []types.FeatureRow, limit int) []types.HashtagCountRow {
	counts := map[string]int{}
	for _, r := range rows {
		for _, tag := range strings.Fields(r.Hashtags) {
			counts[strings.ToLower(tag)]++
		}
	}

	out := make([]types.HashtagCountRow, 0, len(counts))
	for tag, n := range counts {
		out = append(out, types.HashtagCountRow{Hashtag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hashtag < out[j].Hashtag
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ThemeDistribution counts posts per theme, descending by count with ties
// broken by theme ascending.
func ThemeDistribution(rows []types.FeatureRow) []types.ThemeCountRow {
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Theme]++
	}

	out := make([]types.ThemeCountRow, 0, len(counts))
	for theme, n := range counts {
		out = append(out, types.ThemeCountRow{Theme: theme, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Theme < out[j].Theme
	})
	return out
}

// temporalCell is one (weekday, time-of-day) grouping cell.
type temporalCell struct {
	dayOfWeek      int
	timeOfDay      string
	count          int
	meanEngagement float64
	meanShares     float64
	themes         string // distinct themes, sorted, ", "-joined
	hashtags       string // per-row hashtag strings, ", "-joined
}

// temporalCells groups a population by (day_of_week, time_of_day). Rows
// without a derivable weekday (zero timestamp) are dropped. Cells are
// ordered by day ascending, then bucket label ascending.
func temporalCells(rows []types.FeatureRow) []temporalCell {
	type key struct {
		day    int
		bucket string
	}
	type acc struct {
		engagement []float64
		shares     []float64
		themes     map[string]bool
		hashtags   []string
	}
	groups := map[key]*acc{}
	for _, r := range rows {
		if r.DayOfWeek == 0 {
			continue
		}
		k := key{day: r.DayOfWeek, bucket: TimeOfDay(r.Hour)}
		a := groups[k]
		if a == nil {
			a = &acc{themes: map[string]bool{}}
			groups[k] = a
		}
		a.engagement = append(a.engagement, float64(r.EngagementTotal))
		a.shares = append(a.shares, float64(r.Shares))
		a.themes[r.Theme] = true
		a.hashtags = append(a.hashtags, r.Hashtags)
	}

	out := make([]temporalCell, 0, len(groups))
	for k, a := range groups {
		themes := make([]string, 0, len(a.themes))
		for theme := range a.themes {
			themes = append(themes, theme)
		}
		sort.Strings(themes)
		out = append(out, temporalCell{
			dayOfWeek:      k.day,
			timeOfDay:      k.bucket,
			count:          len(a.engagement),
			meanEngagement: stats.Mean(a.engagement),
			meanShares:     stats.Mean(a.shares),
			themes:         strings.Join(themes, ", "),
			hashtags:       strings.Join(a.hashtags, ", "),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].dayOfWeek != out[j].dayOfWeek {
			return out[i].dayOfWeek < out[j].dayOfWeek
		}
		return out[i].timeOfDay < out[j].timeOfDay
	})
	return out
}

// TemporalEngagement projects the temporal grouping onto mean engagement.
func TemporalEngagement(rows []types.FeatureRow) []types.TemporalEngagementRow {
	cells := temporalCells(rows)
	out := make([]types.TemporalEngagementRow, len(cells))
	for i, c := range cells {
		out[i] = types.TemporalEngagementRow{
			DayOfWeek:      c.dayOfWeek,
			TimeOfDay:      c.timeOfDay,
			MeanEngagement: c.meanEngagement,
		}
	}
	return out
}

// TemporalShares projects the temporal grouping onto mean shares.
func TemporalShares(rows []types.FeatureRow) []types.TemporalSharesRow {
	cells := temporalCells(rows)
	out := make([]types.TemporalSharesRow, len(cells))
	for i, c := range cells {
		out[i] = types.TemporalSharesRow{
			DayOfWeek:  c.dayOfWeek,
			TimeOfDay:  c.timeOfDay,
			MeanShares: c.meanShares,
		}
	}
	return out
}
