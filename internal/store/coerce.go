package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/pulselab/linkpulse/pkg/types"
)

// RawPost is a post as it arrives from a scrape export, before type
// coercion. Counts come in as free-form strings and any field may be
// missing.
type RawPost struct {
	ID         int64   `json:"id"`
	Author     *string `json:"author"`
	AuthorLink *string `json:"author_link"`
	Text       *string `json:"text"`
	Date       *string `json:"date"`
	Likes      *string `json:"likes"`
	Comments   *string `json:"comments"`
	Shares     *string `json:"shares"`
	Followers  *string `json:"followers"`
	Theme      *string `json:"theme"`
}

// Coerce converts a raw scrape record into a storable Post: counts that
// are missing or non-numeric become 0, missing text becomes "N/A", and
// unparseable dates become the zero time.
func (r RawPost) Coerce() types.Post {
	p := types.Post{
		ID:         r.ID,
		Author:     deref(r.Author),
		AuthorLink: deref(r.AuthorLink),
		Text:       "N/A",
		Likes:      coerceCount(r.Likes),
		Comments:   coerceCount(r.Comments),
		Shares:     coerceCount(r.Shares),
		Followers:  coerceCount(r.Followers),
		Theme:      deref(r.Theme),
	}
	if r.Text != nil && *r.Text != "" {
		p.Text = *r.Text
	}
	if r.Date != nil {
		p.Date = coerceDate(*r.Date)
	}
	return p
}

// CoercePosts converts a batch of raw records.
func CoercePosts(raw []RawPost) []types.Post {
	posts := make([]types.Post, len(raw))
	for i, r := range raw {
		posts[i] = r.Coerce()
	}
	return posts
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func coerceCount(s *string) int {
	if s == nil {
		return 0
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func coerceDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
