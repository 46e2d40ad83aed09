package testutil

import (
	"fmt"
	"time"

	"github.com/pulselab/linkpulse/pkg/types"
)

// SamplePosts builds n synthetic posts spread across themes, dates, and
// engagement levels. Ids run 1..n; roughly every tenth post carries most
// of the shares so top-decile cuts have a clear winner set.
func SamplePosts(n int) []types.Post {
	themes := []string{"IA", "Technology", "Marketing"}
	base := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC) // a Monday
	posts := make([]types.Post, n)
	for i := range posts {
		id := int64(i + 1)
		shares := i % 7
		if i%10 == 0 {
			shares = 100 + i
		}
		posts[i] = types.Post{
			ID:        id,
			Author:    fmt.Sprintf("author-%d", i%5),
			Text:      fmt.Sprintf("post %d about #data and #ai", id),
			Date:      base.Add(time.Duration(i) * 3 * time.Hour),
			Likes:     i % 50,
			Comments:  i % 11,
			Shares:    shares,
			Followers: 1000 + i,
			Theme:     themes[i%len(themes)],
		}
	}
	return posts
}

// SampleFeatureRow builds one feature row with sane defaults, overridable
// by mutating the result.
func SampleFeatureRow(id int64) types.FeatureRow {
	return types.FeatureRow{
		Post: types.Post{
			ID:     id,
			Text:   fmt.Sprintf("post %d #ai", id),
			Date:   time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
			Theme:  "IA",
			Likes:  10,
			Shares: 2,
		},
		EngagementTotal:    12,
		TextLength:         3,
		DayOfWeek:          1,
		Hour:               9,
		Hashtags:           "#ai",
		NbrHashtags:        1,
		EngagementCategory: types.EngagementLow,
	}
}
