package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/calegray/laurel/internal/content"
)

func TestContentRepo_GetMissing(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()

	_, err := repo.Get(context.Background(), content.TypeProject, "nope")
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContentRepo_CreateGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()
	ctx := context.Background()

	payload := json.RawMessage(`{"title":"laurel","description":"portfolio engine","link":"https://example.com"}`)
	if err := repo.Create(ctx, content.TypeProject, "laurel", payload); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	doc, err := repo.Get(ctx, content.TypeProject, "laurel")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if doc.EntityType != content.TypeProject || doc.ID != "laurel" {
		t.Errorf("doc identity = %s/%s, expected %s/laurel", doc.EntityType, doc.ID, content.TypeProject)
	}

	var proj content.Project
	if err := json.Unmarshal(doc.Payload, &proj); err != nil {
		t.Fatalf("payload did not round-trip: %v", err)
	}
	if proj.Title != "laurel" {
		t.Errorf("title = %q, expected %q", proj.Title, "laurel")
	}
}

func TestContentRepo_CreateDuplicateFails(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()
	ctx := context.Background()

	payload := json.RawMessage(`{"title":"x"}`)
	if err := repo.Create(ctx, content.TypeProject, "dup", payload); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := repo.Create(ctx, content.TypeProject, "dup", payload); err == nil {
		t.Error("expected error creating duplicate (entity_type, id)")
	}
}

func TestContentRepo_SameIDDifferentTypes(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()
	ctx := context.Background()

	if err := repo.Create(ctx, content.TypeSkill, "go", json.RawMessage(`{"name":"Go"}`)); err != nil {
		t.Fatalf("Create() skill failed: %v", err)
	}
	if err := repo.Create(ctx, content.TypeProject, "go", json.RawMessage(`{"title":"Go tooling"}`)); err != nil {
		t.Errorf("same id under a different entity type should be allowed: %v", err)
	}
}

func TestContentRepo_ListFiltersAndOrders(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()
	ctx := context.Background()

	for _, id := range []string{"alpha", "beta", "gamma"} {
		if err := repo.Create(ctx, content.TypeProject, id, json.RawMessage(`{"title":"`+id+`"}`)); err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
	}
	if err := repo.Create(ctx, content.TypeSkill, "go", json.RawMessage(`{"name":"Go"}`)); err != nil {
		t.Fatalf("Create(skill) failed: %v", err)
	}

	docs, err := repo.List(ctx, content.TypeProject)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("len(docs) = %d, expected 3", len(docs))
	}
	// Same created_at second in a fast test run, so id order decides.
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if docs[i].ID != want {
			t.Errorf("docs[%d].ID = %q, expected %q", i, docs[i].ID, want)
		}
	}
}

func TestContentRepo_ListEmpty(t *testing.T) {
	s := newTestStore(t)

	docs, err := s.Content().List(context.Background(), content.TypeEducation)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("len(docs) = %d, expected 0", len(docs))
	}
}

func TestContentRepo_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()
	ctx := context.Background()

	if err := repo.Create(ctx, content.TypeAbout, content.TypeAbout, json.RawMessage(`{"headline":"old"}`)); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := repo.Update(ctx, content.TypeAbout, content.TypeAbout, json.RawMessage(`{"headline":"new"}`)); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	doc, err := repo.Get(ctx, content.TypeAbout, content.TypeAbout)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	var about content.About
	if err := json.Unmarshal(doc.Payload, &about); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if about.Headline != "new" {
		t.Errorf("headline = %q, expected %q", about.Headline, "new")
	}
}

func TestContentRepo_UpdateMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Content().Update(context.Background(), content.TypeAbout, "ghost", json.RawMessage(`{}`))
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContentRepo_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Content()
	ctx := context.Background()

	if err := repo.Create(ctx, content.TypeProject, "gone", json.RawMessage(`{"title":"x"}`)); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := repo.Delete(ctx, content.TypeProject, "gone"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := repo.Get(ctx, content.TypeProject, "gone"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestContentRepo_DeleteMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.Content().Delete(context.Background(), content.TypeProject, "ghost")
	if !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
