package types

// Stable report names. Consumers address report snapshots by these names;
// renaming one is a breaking change for every dashboard reading it.
const (
	ReportVolumeSummary          = "volume_summary"
	ReportEngagementTierProfile  = "engagement_tier_profile"
	ReportViralityProfile        = "virality_profile"
	ReportHashtagImpact          = "hashtag_impact"
	ReportTopHashtagsViral       = "top_hashtags_viral"
	ReportTopHashtagsEngagement  = "top_hashtags_engagement"
	ReportThemesViral            = "theme_distribution_viral"
	ReportThemesEngagement       = "theme_distribution_engagement"
	ReportViralTiming            = "viral_timing"
	ReportViralSharesTiming      = "viral_shares_timing"
	ReportEngagementTiming       = "engagement_timing"
	ReportEngagementSharesTiming = "engagement_shares_timing"
)

// ReportNames lists every report a full aggregation run writes.
var ReportNames = []string{
	ReportVolumeSummary,
	ReportEngagementTierProfile,
	ReportViralityProfile,
	ReportHashtagImpact,
	ReportTopHashtagsViral,
	ReportTopHashtagsEngagement,
	ReportThemesViral,
	ReportThemesEngagement,
	ReportViralTiming,
	ReportViralSharesTiming,
	ReportEngagementTiming,
	ReportEngagementSharesTiming,
}

// VolumeSummary counts the whole table and its two key populations.
type VolumeSummary struct {
	TotalPosts          int `json:"total_posts"`
	HighEngagementPosts int `json:"high_engagement_posts"`
	ViralPosts          int `json:"viral_posts"`
}

// TierProfileRow profiles text length within one engagement tier.
type TierProfileRow struct {
	Category         EngagementCategory `json:"engagement_category"`
	MeanTextLength   float64            `json:"mean_text_length"`
	MedianTextLength float64            `json:"median_text_length"`
	StdTextLength    float64            `json:"std_text_length"`
	Count            int                `json:"count"`
}

// ViralityProfileRow profiles text length and audience within the viral
// and non-viral populations.
type ViralityProfileRow struct {
	IsViral          bool    `json:"is_viral"`
	MeanTextLength   float64 `json:"mean_text_length"`
	MedianTextLength float64 `json:"median_text_length"`
	StdTextLength    float64 `json:"std_text_length"`
	Count            int     `json:"count"`
	MeanFollowers    float64 `json:"mean_followers"`
}

// HashtagImpactRow relates hashtag count to engagement and shares.
type HashtagImpactRow struct {
	NbrHashtags      int     `json:"nbr_hashtags"`
	MeanEngagement   float64 `json:"mean_engagement_total"`
	MedianEngagement float64 `json:"median_engagement_total"`
	MeanShares       float64 `json:"mean_shares"`
	MedianShares     float64 `json:"median_shares"`
}

// HashtagCountRow is one distinct lower-cased hashtag and its occurrence
// count within a population.
type HashtagCountRow struct {
	Hashtag string `json:"hashtag"`
	Count   int    `json:"count"`
}

// ThemeCountRow is one theme and its post count within a population.
type ThemeCountRow struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// TemporalEngagementRow projects mean engagement per weekday/time-of-day cell.
type TemporalEngagementRow struct {
	DayOfWeek      int     `json:"day_of_week"`
	TimeOfDay      string  `json:"time_of_day"`
	MeanEngagement float64 `json:"mean_engagement_total"`
}

// TemporalSharesRow projects mean shares per weekday/time-of-day cell.
type TemporalSharesRow struct {
	DayOfWeek  int     `json:"day_of_week"`
	TimeOfDay  string  `json:"time_of_day"`
	MeanShares float64 `json:"mean_shares"`
}
