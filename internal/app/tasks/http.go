package tasks

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Service       *Service
	AllowedOrigin string
}

func NewHandler(service *Service, allowedOrigin string) *Handler {
	return &Handler{
		Service:       service,
		AllowedOrigin: allowedOrigin,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.corsMiddleware)
	r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/", h.handleRoot)
	r.Get("/check-data", h.handleCheckData)

	r.Get("/api/tasks", h.handleList)
	r.Post("/api/tasks", h.handleCreate)
	r.Get("/api/tasks/debug", h.handleDebug)
	r.Get("/api/tasks/export.ics", h.handleExportICS)
	r.Put("/api/tasks/{id}", h.handleUpdate)
	r.Delete("/api/tasks/{id}", h.handleDelete)

	return r
}

type createTaskRequest struct {
	Text          string `json:"text"`
	FormattedText string `json:"formattedText"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	EventType     string `json:"eventType"`
	Completed     bool   `json:"completed"`
}

type updateTaskRequest struct {
	Completed bool `json:"completed"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server is running! Try /check-data to see database contents."))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.List(r.Context())
	if err != nil {
		log.Errorf("failed to list tasks: %v", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// The formattedText field is accepted for wire compatibility but the
	// service rederives it from text and eventType.
	id, err := h.Service.Create(r.Context(), CreateRequest{
		Text:      req.Text,
		Date:      req.Date,
		Time:      req.Time,
		EventType: req.EventType,
		Completed: req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTextRequired), errors.Is(err, ErrDateRequired),
			errors.Is(err, ErrTimeRequired), errors.Is(err, ErrEventTypeRequired):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Errorf("failed to create task: %v", err)
			h.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.Service.SetCompleted(r.Context(), id, req.Completed); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Errorf("failed to update task %d: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Task updated successfully"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Errorf("failed to delete task %d: %v", id, err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

type debugTask struct {
	ID            int64  `json:"id"`
	Text          string `json:"text"`
	FormattedText string `json:"formatted_text"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	EventType     string `json:"event_type"`
	Completed     string `json:"completed"`
	CreatedAt     string `json:"created_at"`
}

func (h *Handler) handleDebug(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.List(r.Context())
	if err != nil {
		log.Errorf("failed to list tasks: %v", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	formatted := make([]debugTask, 0, len(tasks))
	for _, t := range tasks {
		completed := "No"
		if t.Completed {
			completed = "Yes"
		}
		formatted = append(formatted, debugTask{
			ID:            t.ID,
			Text:          t.Text,
			FormattedText: t.FormattedText,
			Date:          t.Date,
			Time:          t.Time,
			EventType:     t.EventType,
			Completed:     completed,
			CreatedAt:     t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		var sb strings.Builder
		sb.WriteString("<h1>Stored Tasks</h1>")
		sb.WriteString("<table border=\"1\"><tr><th>ID</th><th>Text</th><th>Formatted Text</th>" +
			"<th>Date</th><th>Time</th><th>Event Type</th><th>Completed</th><th>Created At</th></tr>")
		for _, t := range formatted {
			sb.WriteString("<tr><td>")
			sb.WriteString(strconv.FormatInt(t.ID, 10))
			sb.WriteString("</td><td>")
			sb.WriteString(html.EscapeString(t.Text))
			sb.WriteString("</td><td>")
			sb.WriteString(html.EscapeString(t.FormattedText))
			sb.WriteString("</td><td>")
			sb.WriteString(t.Date)
			sb.WriteString("</td><td>")
			sb.WriteString(t.Time)
			sb.WriteString("</td><td>")
			sb.WriteString(html.EscapeString(t.EventType))
			sb.WriteString("</td><td>")
			sb.WriteString(t.Completed)
			sb.WriteString("</td><td>")
			sb.WriteString(t.CreatedAt)
			sb.WriteString("</td></tr>")
		}
		sb.WriteString("</table>")
		h.writeHTML(w, sb.String())
		return
	}

	h.writeJSON(w, http.StatusOK, formatted)
}

func (h *Handler) handleCheckData(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.List(r.Context())
	if err != nil {
		log.Errorf("failed to read tasks for /check-data: %v", err)
		h.writeHTML(w, "<h2>Error reading tasks:</h2><pre>"+html.EscapeString(err.Error())+"</pre>")
		return
	}

	var sb strings.Builder
	sb.WriteString("<h2>Tasks in Database:</h2>")
	if len(tasks) == 0 {
		sb.WriteString("<p>No tasks found in database.</p>")
	} else {
		sb.WriteString("<table border=\"1\" style=\"border-collapse: collapse; width: 100%;\">")
		sb.WriteString("<tr><th>ID</th><th>Text</th><th>Formatted Text</th><th>Date</th>" +
			"<th>Time</th><th>Event Type</th><th>Completed</th></tr>")
		for _, t := range tasks {
			completed := "No"
			if t.Completed {
				completed = "Yes"
			}
			sb.WriteString("<tr><td>")
			sb.WriteString(strconv.FormatInt(t.ID, 10))
			sb.WriteString("</td><td>")
			sb.WriteString(html.EscapeString(t.Text))
			sb.WriteString("</td><td>")
			sb.WriteString(html.EscapeString(t.FormattedText))
			sb.WriteString("</td><td>")
			sb.WriteString(t.Date)
			sb.WriteString("</td><td>")
			sb.WriteString(t.Time)
			sb.WriteString("</td><td>")
			sb.WriteString(html.EscapeString(t.EventType))
			sb.WriteString("</td><td>")
			sb.WriteString(completed)
			sb.WriteString("</td></tr>")
		}
		sb.WriteString("</table>")
	}
	sb.WriteString("<h2>Row Count:</h2><pre>")
	sb.WriteString(strconv.Itoa(len(tasks)))
	sb.WriteString("</pre>")
	h.writeHTML(w, sb.String())
}

func (h *Handler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

func (h *Handler) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin, Access-Control-Request-Headers")
		w.Header().Set("Access-Control-Allow-Origin", h.allowedOrigin())
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		requestHeaders := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers"))
		if requestHeaders != "" {
			w.Header().Set("Access-Control-Allow-Headers", requestHeaders)
		} else {
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) allowedOrigin() string {
	allowed := strings.TrimSpace(h.AllowedOrigin)
	if allowed == "" {
		return "*"
	}
	return allowed
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
