package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testMessage(id string, createdAt time.Time) Message {
	return Message{
		ID:        id,
		Name:      "Recruiter",
		Email:     "recruiter@example.com",
		Body:      "Saw your site, let's talk.",
		Emailed:   true,
		CreatedAt: createdAt,
	}
}

func TestMessageRepo_InsertAndList(t *testing.T) {
	s := newTestStore(t)
	repo := s.Messages()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.Insert(ctx, testMessage("m1", now)); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	msgs, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, expected 1", len(msgs))
	}
	got := msgs[0]
	if got.ID != "m1" || got.Name != "Recruiter" || got.Email != "recruiter@example.com" {
		t.Errorf("message fields did not round-trip: %+v", got)
	}
	if !got.Emailed {
		t.Error("emailed flag did not round-trip")
	}
}

func TestMessageRepo_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	repo := s.Messages()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		msg := testMessage(id, base.Add(time.Duration(i)*time.Hour))
		if err := repo.Insert(ctx, msg); err != nil {
			t.Fatalf("Insert(%s) failed: %v", id, err)
		}
	}

	msgs, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d, expected 3", len(msgs))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if msgs[i].ID != want {
			t.Errorf("msgs[%d].ID = %q, expected %q", i, msgs[i].ID, want)
		}
	}
}

func TestMessageRepo_ListLimit(t *testing.T) {
	s := newTestStore(t)
	repo := s.Messages()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		msg := testMessage(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := repo.Insert(ctx, msg); err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	msgs, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("len(msgs) = %d, expected 2", len(msgs))
	}
}

func TestMessageRepo_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Messages()
	ctx := context.Background()

	if err := repo.Insert(ctx, testMessage("m1", time.Now().UTC())); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if err := repo.Delete(ctx, "m1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d after delete, expected 0", n)
	}
}

func TestMessageRepo_DeleteMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Messages().Delete(context.Background(), "ghost")
	if !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestMessageRepo_Count(t *testing.T) {
	s := newTestStore(t)
	repo := s.Messages()
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Count() on empty table = %d, %v", n, err)
	}

	for i := 0; i < 3; i++ {
		msg := testMessage(string(rune('a'+i)), time.Now().UTC())
		if err := repo.Insert(ctx, msg); err != nil {
			t.Fatalf("Insert() failed: %v", err)
		}
	}

	n, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count() = %d, expected 3", n)
	}
}
