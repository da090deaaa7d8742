package tasks

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
)

const icsProductID = "-//taskcal//tracker//EN"

// BuildCalendar renders the event list as an iCalendar feed. Events whose
// stored date or time fail to parse are skipped; each event spans one hour.
func BuildCalendar(items []Task) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	for _, t := range items {
		start, err := time.ParseInLocation("2006-01-02 15:04", t.Date+" "+t.Time, time.Local)
		if err != nil {
			log.Warnf("skipping task %d in ICS export: %v", t.ID, err)
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("task-%d@taskcal", t.ID))
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(time.Hour))
		ev.SetSummary(t.FormattedText)
		ev.SetDescription(t.EventType)
		if !t.CreatedAt.IsZero() {
			ev.SetCreatedTime(t.CreatedAt)
			ev.SetDtStampTime(t.CreatedAt)
		}
	}
	return cal
}

func (h *Handler) handleExportICS(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		log.Errorf("failed to list tasks for ICS export: %v", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tasks.ics"`)
	_, _ = w.Write([]byte(BuildCalendar(items).Serialize()))
}
