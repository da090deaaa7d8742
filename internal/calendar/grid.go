// Package calendar builds the month view shown on the tracker page: a
// 7-column grid of day cells plus per-day event markers.
package calendar

import (
	"fmt"
	"strconv"
	"time"
)

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one grid slot. Exactly one of Header, Blank or a day assignment
// applies: header cells carry a weekday label, blank cells pad the first
// week, day cells carry the day number and its ISO date tag.
type Cell struct {
	Header bool
	Blank  bool
	Day    int
	Date   string
	Label  string
}

// MonthGrid returns the cells for one month: seven weekday headers, one
// leading blank per weekday-offset of the first day, then one cell per day
// tagged with its zero-padded ISO date.
func MonthGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	days := daysInMonth(year, month)

	cells := make([]Cell, 0, len(weekdayNames)+offset+days)
	for _, name := range weekdayNames {
		cells = append(cells, Cell{Header: true, Label: name})
	}
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Day:   day,
			Label: strconv.Itoa(day),
			Date:  fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
		})
	}
	return cells
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Markers collects event-type dots per day, at most one per
// (date, eventType) pair.
type Markers struct {
	byDate map[string][]string
	seen   map[string]struct{}
}

func NewMarkers() *Markers {
	return &Markers{
		byDate: map[string][]string{},
		seen:   map[string]struct{}{},
	}
}

// Mark records an event type on a date. It reports whether a new marker was
// added; repeated pairs are ignored.
func (m *Markers) Mark(date, eventType string) bool {
	if date == "" || eventType == "" {
		return false
	}
	key := date + "\x00" + eventType
	if _, ok := m.seen[key]; ok {
		return false
	}
	m.seen[key] = struct{}{}
	m.byDate[date] = append(m.byDate[date], eventType)
	return true
}

// ForDate returns the event types marked on a date in insertion order.
func (m *Markers) ForDate(date string) []string {
	return m.byDate[date]
}
