package calendar

import (
	"fmt"
	"testing"
	"time"
)

func TestMonthGrid_Shape(t *testing.T) {
	cases := []struct {
		year   int
		month  time.Month
		offset int
		days   int
	}{
		{2023, time.February, 3, 28},
		{2024, time.February, 4, 29},
		{2025, time.March, 6, 31},
		{2025, time.June, 0, 30},
	}

	for _, tc := range cases {
		cells := MonthGrid(tc.year, tc.month)

		want := 7 + tc.offset + tc.days
		if len(cells) != want {
			t.Fatalf("%d-%02d: expected %d cells, got %d", tc.year, tc.month, want, len(cells))
		}

		for i, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
			if !cells[i].Header || cells[i].Label != name {
				t.Fatalf("%d-%02d: header cell %d = %+v, want %s", tc.year, tc.month, i, cells[i], name)
			}
		}
		for i := 7; i < 7+tc.offset; i++ {
			if !cells[i].Blank || cells[i].Date != "" {
				t.Fatalf("%d-%02d: cell %d should be blank, got %+v", tc.year, tc.month, i, cells[i])
			}
		}
		for day := 1; day <= tc.days; day++ {
			cell := cells[7+tc.offset+day-1]
			if cell.Day != day {
				t.Fatalf("%d-%02d: expected day %d, got %+v", tc.year, tc.month, day, cell)
			}
			wantDate := fmt.Sprintf("%04d-%02d-%02d", tc.year, int(tc.month), day)
			if cell.Date != wantDate {
				t.Fatalf("%d-%02d: expected date tag %s, got %s", tc.year, tc.month, wantDate, cell.Date)
			}
		}
	}
}

func TestMonthGrid_ZeroPadsDates(t *testing.T) {
	cells := MonthGrid(2026, time.January)
	last := cells[len(cells)-1]
	if last.Date != "2026-01-31" {
		t.Fatalf("expected 2026-01-31, got %s", last.Date)
	}
	first := cells[7+int(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).Weekday())]
	if first.Date != "2026-01-01" {
		t.Fatalf("expected 2026-01-01, got %s", first.Date)
	}
}

func TestMarkers_DedupesPerDateAndType(t *testing.T) {
	m := NewMarkers()

	if !m.Mark("2026-03-14", "birthday") {
		t.Fatal("first mark should be added")
	}
	if m.Mark("2026-03-14", "birthday") {
		t.Fatal("duplicate (date, type) pair should be ignored")
	}
	if !m.Mark("2026-03-14", "meeting") {
		t.Fatal("distinct type on same date should be added")
	}
	if !m.Mark("2026-03-15", "birthday") {
		t.Fatal("same type on distinct date should be added")
	}

	got := m.ForDate("2026-03-14")
	if len(got) != 2 || got[0] != "birthday" || got[1] != "meeting" {
		t.Fatalf("unexpected markers for 2026-03-14: %v", got)
	}
	if len(m.ForDate("2026-03-16")) != 0 {
		t.Fatal("unmarked date should have no markers")
	}
}

func TestMarkers_IgnoresEmptyInputs(t *testing.T) {
	m := NewMarkers()
	if m.Mark("", "birthday") || m.Mark("2026-03-14", "") {
		t.Fatal("empty date or type should not produce a marker")
	}
}
