package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDay_Boundaries(t *testing.T) {
	cases := map[int]string{
		5:  Evening,
		6:  EarlyMorning,
		8:  EarlyMorning,
		9:  MidMorning,
		11: MidMorning,
		12: Afternoon,
		16: Afternoon,
		17: EndOfDay,
		19: EndOfDay,
		20: Evening,
	}
	for hour, want := range cases {
		assert.Equal(t, want, TimeOfDay(hour), "hour %d", hour)
	}
}

func TestTimeOfDay_TotalAndDisjoint(t *testing.T) {
	known := map[string]bool{
		EarlyMorning: true,
		MidMorning:   true,
		Afternoon:    true,
		EndOfDay:     true,
		Evening:      true,
	}
	for hour := 0; hour <= 23; hour++ {
		label := TimeOfDay(hour)
		assert.True(t, known[label], "hour %d mapped to unknown bucket %q", hour, label)
	}
}
