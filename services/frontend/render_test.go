package frontend

import (
	"strings"
	"testing"
	"time"

	"github.com/taskcal/project/internal/app/tasks"
)

func TestRenderTaskList_EscapesAndMarksCompleted(t *testing.T) {
	items := []tasks.Task{
		{ID: 1, FormattedText: "Meeting with <Bob>", Date: "2026-03-20", Time: "10:00", EventType: "meeting"},
		{ID: 2, FormattedText: "Alice's Birthday", Date: "2026-03-14", Time: "15:30", EventType: "birthday", Completed: true},
	}

	out := RenderTaskList(items)

	if strings.Contains(out, "<Bob>") {
		t.Fatalf("display text not escaped:\n%s", out)
	}
	if !strings.Contains(out, "Meeting with &lt;Bob&gt;") {
		t.Fatalf("expected escaped display text:\n%s", out)
	}
	if !strings.Contains(out, `data-task-id="1"`) || !strings.Contains(out, `data-task-id="2"`) {
		t.Fatalf("expected task id data attributes:\n%s", out)
	}
	if !strings.Contains(out, `class="task-item completed"`) {
		t.Fatalf("expected completed class on done task:\n%s", out)
	}
	if !strings.Contains(out, "Alice&#39;s Birthday - 2026-03-14 15:30 (birthday)") {
		t.Fatalf("expected full label line:\n%s", out)
	}
}

func TestRenderTaskList_EmptyStillHasList(t *testing.T) {
	out := RenderTaskList(nil)
	if !strings.Contains(out, `<ul id="taskList">`) || !strings.Contains(out, "</ul>") {
		t.Fatalf("expected empty list shell, got:\n%s", out)
	}
}

func TestRenderCalendar_CellsAndDots(t *testing.T) {
	items := []tasks.Task{
		{ID: 1, Date: "2026-03-14", EventType: "birthday"},
		{ID: 2, Date: "2026-03-14", EventType: "birthday"},
		{ID: 3, Date: "2026-03-14", EventType: "call"},
		{ID: 4, Date: "2026-03-20", EventType: "meeting"},
	}

	out := RenderCalendar(2026, time.March, items)

	if !strings.Contains(out, "March 2026") {
		t.Fatalf("expected month title:\n%s", out)
	}
	for _, date := range []string{"2026-03-01", "2026-03-14", "2026-03-31"} {
		if !strings.Contains(out, `data-date="`+date+`"`) {
			t.Fatalf("expected day cell for %s:\n%s", date, out)
		}
	}
	if got := strings.Count(out, `class="event-dot birthday"`); got != 1 {
		t.Fatalf("expected one birthday dot after dedup, got %d", got)
	}
	if got := strings.Count(out, `class="event-dot call"`); got != 1 {
		t.Fatalf("expected one call dot, got %d", got)
	}
	if got := strings.Count(out, `class="event-dot meeting"`); got != 1 {
		t.Fatalf("expected one meeting dot, got %d", got)
	}
}
