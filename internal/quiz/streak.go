package quiz

import "time"

const dateLayout = "2006-01-02"

// NextStreak returns the daily streak after a quiz completed on today.
// lastDate is the previous quiz day as YYYY-MM-DD, or empty.
func NextStreak(streak int, lastDate string, today time.Time) int {
	last, err := time.Parse(dateLayout, lastDate)
	if err != nil {
		return 1
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch day.Sub(last) {
	case 0:
		if streak < 1 {
			return 1
		}
		return streak
	case 24 * time.Hour:
		return streak + 1
	default:
		return 1
	}
}

// NextMilestone returns the next streak length worth celebrating.
func NextMilestone(current int) int {
	for _, t := range []int{3, 7, 14, 30} {
		if t > current {
			return t
		}
	}
	// Beyond 30, every 30 days.
	return ((current / 30) + 1) * 30
}

// CurrentStreak returns the streak as of today: a streak whose last quiz
// day is before yesterday has lapsed.
func CurrentStreak(streak int, lastDate string, today time.Time) int {
	last, err := time.Parse(dateLayout, lastDate)
	if err != nil {
		return 0
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if gap := day.Sub(last); gap < 0 || gap > 24*time.Hour {
		return 0
	}
	return streak
}
