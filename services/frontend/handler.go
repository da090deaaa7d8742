package frontend

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	log "github.com/sirupsen/logrus"

	"github.com/taskcal/project/internal/app/tasks"
	"github.com/taskcal/project/internal/calendar"
)

// Handler serves the tracker page, its HTML fragments and static assets.
type Handler struct {
	service *tasks.Service
	now     func() time.Time
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/app", templ.Handler(IndexPage()))
	mux.HandleFunc("/ui/tasks", h.handleTaskList)
	mux.HandleFunc("/ui/calendar", h.handleCalendar)
	mux.Handle("/static/", http.StripPrefix("/static/", StaticHandler()))
}

func (h *Handler) handleTaskList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		log.WithError(err).Error("frontend: list tasks")
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, RenderTaskList(items))
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		log.WithError(err).Error("frontend: list tasks for calendar")
		http.Error(w, "failed to load calendar", http.StatusInternalServerError)
		return
	}
	now := h.now()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, RenderCalendar(now.Year(), now.Month(), items))
}

// RenderTaskList builds the <ul> fragment shown in the task list container.
// Each entry carries its id and event type as data attributes so the page
// script can wire the toggle and remove actions.
func RenderTaskList(items []tasks.Task) string {
	var b strings.Builder
	b.WriteString(`<ul id="taskList">`)
	for _, item := range items {
		class := "task-item"
		if item.Completed {
			class += " completed"
		}
		fmt.Fprintf(&b, `<li class="%s" data-task-id="%d" data-event-type="%s">`,
			class, item.ID, html.EscapeString(item.EventType))
		fmt.Fprintf(&b, `<span class="task-label">%s - %s %s (%s)</span>`,
			html.EscapeString(item.FormattedText),
			html.EscapeString(item.Date),
			html.EscapeString(item.Time),
			html.EscapeString(item.EventType))
		fmt.Fprintf(&b, `<button class="remove-task" data-task-id="%d">Remove</button>`, item.ID)
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

// RenderCalendar builds the month grid fragment. Day cells that have events
// get one dot per distinct event type on that date.
func RenderCalendar(year int, month time.Month, items []tasks.Task) string {
	markers := calendar.NewMarkers()
	for _, item := range items {
		markers.Mark(item.Date, item.EventType)
	}

	var b strings.Builder
	b.WriteString(`<div id="calendar">`)
	fmt.Fprintf(&b, `<div class="calendar-title">%s %d</div>`, month.String(), year)
	b.WriteString(`<div class="calendar-grid">`)
	for _, cell := range calendar.MonthGrid(year, month) {
		switch {
		case cell.Header:
			fmt.Fprintf(&b, `<div class="calendar-day calendar-head">%s</div>`, cell.Label)
		case cell.Blank:
			b.WriteString(`<div class="calendar-day calendar-blank"></div>`)
		default:
			fmt.Fprintf(&b, `<div class="calendar-day" data-date="%s">%s`, cell.Date, cell.Label)
			if types := markers.ForDate(cell.Date); len(types) > 0 {
				b.WriteString(`<div class="event-dots">`)
				for _, eventType := range types {
					fmt.Fprintf(&b, `<span class="event-dot %s"></span>`, html.EscapeString(eventType))
				}
				b.WriteString(`</div>`)
			}
			b.WriteString(`</div>`)
		}
	}
	b.WriteString(`</div></div>`)
	return b.String()
}
