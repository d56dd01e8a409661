package store

import (
	"context"
	"errors"
	"testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertGet(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	run := &Run{
		ID:        "r1",
		Filename:  "estudio.docx",
		Score:     65,
		Tier:      "🟠 REGULAR",
		Content:   `{"titleEs":"Estudio X"}`,
		Config:    `{"journal":{}}`,
		XML:       "<article/>",
		Report:    "# Reporte",
		CreatedAt: 1700000000,
	}
	if err := s.Insert(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Filename != "estudio.docx" || got.Score != 65 || got.XML != "<article/>" {
		t.Errorf("got = %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrder(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		err := s.Insert(ctx, &Run{
			ID: id, Filename: id + ".docx", Score: i * 10, Tier: "🔴 CRÍTICO",
			Content: "{}", Config: "{}", XML: "<x/>", Report: "r",
			CreatedAt: int64(1000 + i),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("list = %d entries, want 3", len(list))
	}
	// Newest first.
	if list[0].ID != "c" || list[2].ID != "a" {
		t.Errorf("order = %v", []string{list[0].ID, list[1].ID, list[2].ID})
	}

	list, err = s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("limited list = %d entries, want 2", len(list))
	}
}

func TestDelete(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	s.Insert(ctx, &Run{ID: "r1", Filename: "f", Tier: "t", Content: "{}", Config: "{}", XML: "<x/>", Report: "r"})

	if err := s.Delete(ctx, "r1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Error("run still present after delete")
	}
	if err := s.Delete(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
