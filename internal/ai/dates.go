package ai

import "time"

// Relative-date helpers. Every preset query builder is a pure function of
// "now" so that phrases like "this month" resolve at match time, not at
// catalog definition time.

func today(now time.Time) string     { return now.Format("2006-01-02") }
func thisMonth(now time.Time) string { return now.Format("2006-01") }
func thisYear(now time.Time) string  { return now.Format("2006") }

func nextMonth(now time.Time) string {
	return now.AddDate(0, 1, 0).Format("2006-01")
}

type monthRange struct {
	Start string // YYYY-MM inclusive
	End   string // YYYY-MM inclusive
}

func quarterRange(now time.Time, offset int) monthRange {
	qStart := (int(now.Month())-1)/3*3 + 1 + offset*3
	start := time.Date(now.Year(), time.Month(qStart), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 2, 0)
	return monthRange{Start: start.Format("2006-01"), End: end.Format("2006-01")}
}

func thisQuarterRange(now time.Time) monthRange { return quarterRange(now, 0) }
func nextQuarterRange(now time.Time) monthRange { return quarterRange(now, 1) }

type dayRange struct {
	Start string // YYYY-MM-DD inclusive
	End   string // YYYY-MM-DD inclusive
}

// weekRange returns the Monday through Sunday bounds of the current week.
func weekRange(now time.Time) dayRange {
	dow := int(now.Weekday())
	back := dow - 1
	if dow == 0 {
		back = 6
	}
	mon := now.AddDate(0, 0, -back)
	sun := mon.AddDate(0, 0, 6)
	return dayRange{Start: mon.Format("2006-01-02"), End: sun.Format("2006-01-02")}
}
