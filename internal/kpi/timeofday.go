package kpi

// Time-of-day bucket labels. Together the buckets cover every hour 0-23
// exactly once.
const (
	EarlyMorning = "Early morning" // 6-8
	MidMorning   = "Mid-morning"   // 9-11
	Afternoon    = "Afternoon"     // 12-16
	EndOfDay     = "End of day"    // 17-19
	Evening      = "Evening"       // 0-5, 20-23
)

// TimeOfDay maps an hour (0-23) to its bucket label.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 6 && hour <= 8:
		return EarlyMorning
	case hour >= 9 && hour <= 11:
		return MidMorning
	case hour >= 12 && hour <= 16:
		return Afternoon
	case hour >= 17 && hour <= 19:
		return EndOfDay
	default:
		return Evening
	}
}
