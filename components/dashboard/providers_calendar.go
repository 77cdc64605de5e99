package dashboard

import (
	"context"
	"time"
)

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// calendarProvider lays out the month containing meta.Now. Leading cells before the
// first weekday are zero.
func calendarProvider(_ context.Context, meta WidgetContext) (WidgetData, error) {
	now := meta.Now
	if now.IsZero() {
		now = time.Now()
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	days := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())

	cells := make([]int, 0, offset+days)
	for range offset {
		cells = append(cells, 0)
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, day)
	}
	return WidgetData{
		"month":    now.Month().String(),
		"year":     now.Year(),
		"title":    first.Format("January 2006"),
		"weekdays": weekdayLabels,
		"offset":   offset,
		"days":     days,
		"today":    now.Day(),
		"cells":    cells,
	}, nil
}
