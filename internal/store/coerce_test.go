package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestCoerce_Defaults(t *testing.T) {
	p := RawPost{ID: 7}.Coerce()

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "N/A", p.Text)
	assert.Equal(t, 0, p.Likes)
	assert.Equal(t, 0, p.Comments)
	assert.Equal(t, 0, p.Shares)
	assert.Equal(t, 0, p.Followers)
	assert.True(t, p.Date.IsZero())
}

func TestCoerce_Counts(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want int
	}{
		{"valid", strp("42"), 42},
		{"padded", strp(" 42 "), 42},
		{"empty", strp(""), 0},
		{"nil", nil, 0},
		{"garbage", strp("1.2K"), 0},
		{"negative", strp("-3"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceCount(tt.in))
		})
	}
}

func TestCoerce_EmptyTextBecomesNA(t *testing.T) {
	p := RawPost{ID: 1, Text: strp("")}.Coerce()
	assert.Equal(t, "N/A", p.Text)

	p = RawPost{ID: 2, Text: strp("hello")}.Coerce()
	assert.Equal(t, "hello", p.Text)
}

func TestCoerce_Dates(t *testing.T) {
	p := RawPost{ID: 1, Date: strp("2026-08-30T14:30:00Z")}.Coerce()
	assert.Equal(t, time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC), p.Date)

	p = RawPost{ID: 2, Date: strp("2026-08-30 14:30:00")}.Coerce()
	assert.Equal(t, 14, p.Date.Hour())

	p = RawPost{ID: 3, Date: strp("2026-08-30")}.Coerce()
	assert.Equal(t, time.August, p.Date.Month())

	p = RawPost{ID: 4, Date: strp("not a date")}.Coerce()
	assert.True(t, p.Date.IsZero())
}

func TestCoercePosts_PreservesOrder(t *testing.T) {
	raw := []RawPost{{ID: 3}, {ID: 1}, {ID: 2}}
	posts := CoercePosts(raw)

	assert.Len(t, posts, 3)
	assert.Equal(t, int64(3), posts[0].ID)
	assert.Equal(t, int64(1), posts[1].ID)
	assert.Equal(t, int64(2), posts[2].ID)
}
