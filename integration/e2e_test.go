//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskcal/project/internal/app/tasks"
)

// Runs against a real Postgres. Point DATABASE_URL at a disposable database
// and run with -tags integration.
func newRepository(t *testing.T) *tasks.PostgresRepository {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	repo := tasks.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE tasks RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate tasks: %v", err)
	}
	return repo
}

func TestTaskLifecycle(t *testing.T) {
	repo := newRepository(t)
	svc := tasks.NewService(repo)
	ctx := context.Background()

	requests := []tasks.CreateRequest{
		{Text: "Bob", Date: "2026-03-20", Time: "10:00", EventType: "meeting"},
		{Text: "Alice", Date: "2026-03-14", Time: "15:30", EventType: "birthday"},
		{Text: "Eve", Date: "2026-03-14", Time: "09:00", EventType: "call"},
	}
	ids := make([]int64, 0, len(requests))
	for _, req := range requests {
		id, err := svc.Create(ctx, req)
		if err != nil {
			t.Fatalf("create %q: %v", req.Text, err)
		}
		ids = append(ids, id)
	}

	listed, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(listed))
	}
	wantOrder := []string{"Call with Eve", "Alice's Birthday", "Meeting with Bob"}
	for i, want := range wantOrder {
		if listed[i].FormattedText != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, listed[i].FormattedText)
		}
	}
	for _, item := range listed {
		if item.Completed {
			t.Fatalf("task %d should start incomplete", item.ID)
		}
		if item.CreatedAt.IsZero() {
			t.Fatalf("task %d missing created_at", item.ID)
		}
	}

	if err := svc.SetCompleted(ctx, ids[0], true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	listed, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	var found bool
	for _, item := range listed {
		if item.ID == ids[0] {
			found = true
			if !item.Completed {
				t.Fatal("completed flag not persisted")
			}
		}
	}
	if !found {
		t.Fatalf("task %d missing after update", ids[0])
	}

	if err := svc.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, ids[1]); !errors.Is(err, tasks.ErrTaskNotFound) {
		t.Fatalf("repeated delete: expected ErrTaskNotFound, got %v", err)
	}
	if err := svc.SetCompleted(ctx, 99999, true); !errors.Is(err, tasks.ErrTaskNotFound) {
		t.Fatalf("unknown id update: expected ErrTaskNotFound, got %v", err)
	}

	listed, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("final list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 tasks after delete, got %d", len(listed))
	}
}

func TestDateAndTimeRoundTripAsStrings(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, tasks.Task{
		Text:          "Alice",
		FormattedText: "Alice's Birthday",
		Date:          "2026-02-03",
		Time:          "07:05",
		EventType:     "birthday",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	listed, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != id {
		t.Fatalf("unexpected rows: %+v", listed)
	}
	if listed[0].Date != "2026-02-03" {
		t.Fatalf("date not round-tripped, got %q", listed[0].Date)
	}
	if listed[0].Time != "07:05" {
		t.Fatalf("time not round-tripped, got %q", listed[0].Time)
	}
}
