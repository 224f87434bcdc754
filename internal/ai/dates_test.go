package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuarterRange(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		want   monthRange
	}{
		{"first quarter", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), 0, monthRange{"2026-01", "2026-03"}},
		{"quarter boundary month", time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 0, monthRange{"2026-01", "2026-03"}},
		{"fourth quarter", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), 0, monthRange{"2026-10", "2026-12"}},
		{"next quarter", time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), 1, monthRange{"2026-04", "2026-06"}},
		{"next quarter wraps year", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), 1, monthRange{"2027-01", "2027-03"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quarterRange(tt.now, tt.offset))
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want dayRange
	}{
		{"midweek", time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), dayRange{"2026-08-24", "2026-08-30"}}, // Wednesday
		{"monday", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), dayRange{"2026-08-24", "2026-08-30"}},
		{"sunday belongs to preceding week", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), dayRange{"2026-08-24", "2026-08-30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weekRange(tt.now))
		})
	}
}

func TestNextMonth(t *testing.T) {
	assert.Equal(t, "2026-09", nextMonth(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2027-01", nextMonth(time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)))
}
