package tasks

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	TypeBirthday = "birthday"
	TypeMeeting  = "meeting"
	TypeCall     = "call"
)

var ErrTextRequired = errors.New("text is required")
var ErrDateRequired = errors.New("date is required")
var ErrTimeRequired = errors.New("time is required")
var ErrEventTypeRequired = errors.New("eventType is required")

// Task is one persisted calendar event. Date and Time stay plain strings
// (YYYY-MM-DD and HH:MM) end to end; the page compares them against
// calendar cell tags verbatim.
type Task struct {
	ID            int64     `json:"id"`
	Text          string    `json:"text"`
	FormattedText string    `json:"formatted_text"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	EventType     string    `json:"event_type"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

type Store interface {
	EnsureSchema(ctx context.Context) error
	ListAll(ctx context.Context) ([]Task, error)
	Insert(ctx context.Context, task Task) (int64, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	DeleteByID(ctx context.Context, id int64) error
}

type Service struct {
	Store Store
}

func NewService(store Store) *Service {
	return &Service{Store: store}
}

// FormatDisplayText derives the display string for an event from the raw
// text the user typed. Unknown event types pass the text through verbatim.
func FormatDisplayText(text, eventType string) string {
	switch eventType {
	case TypeBirthday:
		return text + "'s Birthday"
	case TypeMeeting:
		return "Meeting with " + text
	case TypeCall:
		return "Call with " + text
	default:
		return text
	}
}

// StripDisplayText is the inverse of FormatDisplayText: it removes the
// decoration for the given event type and recovers the raw text.
func StripDisplayText(formatted, eventType string) string {
	switch eventType {
	case TypeBirthday:
		return strings.TrimSuffix(formatted, "'s Birthday")
	case TypeMeeting:
		return strings.TrimPrefix(formatted, "Meeting with ")
	case TypeCall:
		return strings.TrimPrefix(formatted, "Call with ")
	default:
		return formatted
	}
}

type CreateRequest struct {
	Text      string
	Date      string
	Time      string
	EventType string
	Completed bool
}

// Create validates the request, derives the stored display text and inserts
// the event. The display text is always recomputed here so the formatting
// rule stays the single source of truth for new rows.
func (s *Service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return 0, ErrTextRequired
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		return 0, ErrDateRequired
	}
	clock := strings.TrimSpace(req.Time)
	if clock == "" {
		return 0, ErrTimeRequired
	}
	eventType := strings.TrimSpace(req.EventType)
	if eventType == "" {
		return 0, ErrEventTypeRequired
	}

	return s.Store.Insert(ctx, Task{
		Text:          text,
		FormattedText: FormatDisplayText(text, eventType),
		Date:          date,
		Time:          clock,
		EventType:     eventType,
		Completed:     req.Completed,
	})
}

func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.Store.ListAll(ctx)
}

func (s *Service) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return s.Store.SetCompleted(ctx, id, completed)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.DeleteByID(ctx, id)
}
