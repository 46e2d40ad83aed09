package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pulselab/linkpulse/internal/stats"
	"github.com/pulselab/linkpulse/pkg/types"
)

// Default viral/engagement thresholds: top decile of the input population.
const (
	DefaultViralQuantile      = 0.9
	DefaultEngagementQuantile = 0.9
)

// hashtagPattern matches a leading-# word token. \p{L}\p{N}_ mirrors a
// Unicode word class, so accented tags like #économie survive while a
// hyphen still terminates the token.
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// FeatureOptions configures DeriveFeatures.
type FeatureOptions struct {
	ViralQuantile      float64 // default DefaultViralQuantile
	EngagementQuantile float64 // default DefaultEngagementQuantile
}

func (o FeatureOptions) withDefaults() (FeatureOptions, error) {
	if o.ViralQuantile == 0 {
		o.ViralQuantile = DefaultViralQuantile
	}
	if o.EngagementQuantile == 0 {
		o.EngagementQuantile = DefaultEngagementQuantile
	}
	if o.ViralQuantile < 0 || o.ViralQuantile > 1 || o.EngagementQuantile < 0 || o.EngagementQuantile > 1 {
		return o, fmt.Errorf("quantiles must be within [0,1]")
	}
	return o, nil
}

// DeriveFeatures computes the derived columns for every post and returns
// the feature table sorted ascending by id.
//
// The viral and engagement thresholds are quantiles over this exact input
// table. Callers filtering the table first get thresholds relative to the
// filtered population, which is intentional.
func DeriveFeatures(posts []types.Post, opts FeatureOptions) ([]types.FeatureRow, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	rows := make([]types.FeatureRow, len(posts))
	shares := make([]float64, len(posts))
	engagement := make([]float64, len(posts))

	for i, p := range posts {
		tags := ExtractHashtags(p.Text)
		rows[i] = types.FeatureRow{
			Post:            p,
			EngagementTotal: p.Likes + p.Comments + p.Shares,
			TextLength:      len(strings.Fields(p.Text)),
			DayOfWeek:       isoWeekday(p.Date),
			Hour:            hourOfDay(p.Date),
			Hashtags:        strings.Join(tags, " "),
			NbrHashtags:     len(tags),
		}
		shares[i] = float64(p.Shares)
		engagement[i] = float64(rows[i].EngagementTotal)
	}

	if len(rows) > 0 {
		viralThreshold := stats.Quantile(shares, opts.ViralQuantile)
		engagementThreshold := stats.Quantile(engagement, opts.EngagementQuantile)
		for i := range rows {
			rows[i].IsViral = float64(rows[i].Shares) >= viralThreshold
			rows[i].EngagementCategory = types.EngagementLow
			if float64(rows[i].EngagementTotal) >= engagementThreshold {
				rows[i].EngagementCategory = types.EngagementHigh
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

// ExtractHashtags returns all #-prefixed word tokens of text, in order of
// appearance, original casing preserved.
func ExtractHashtags(text string) []string {
	return hashtagPattern.FindAllString(text, -1)
}

// isoWeekday returns the ISO weekday (Monday=1 .. Sunday=7), or 0 for the
// zero time so temporal groupings can drop rows without a usable timestamp.
func isoWeekday(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func hourOfDay(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return t.Hour()
}
