package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-rescue/internal/ports/rowstore"
)

func seed(t *testing.T, s *RowStore) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []rowstore.Row{
		{"id": "a1", "name": "Luna", "breed": "Labrador", "type": "dog", "status": "available", "adoption_fee": 150.0, "created_at": base},
		{"id": "a2", "name": "Shadow", "breed": "Persian", "type": "cat", "status": "available", "adoption_fee": 80.0, "created_at": base.Add(time.Hour)},
		{"id": "a3", "name": "Max", "breed": "Labrador mix", "type": "dog", "status": "adopted", "adoption_fee": 120.0, "created_at": base.Add(2 * time.Hour)},
	}
	for _, r := range rows {
		if _, err := s.Insert(context.Background(), "animals", r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestSelect_FiltersSearchAndOrder(t *testing.T) {
	s := NewRowStore()
	seed(t, s)

	rows, err := s.Select(context.Background(), *rowstore.From("animals").
		Eq("status", "available").
		Search("LAB", "name", "breed").
		Order("created_at", false))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 1 || rows[0].String("id") != "a1" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	rows, _ = s.Select(context.Background(), *rowstore.From("animals").Order("adoption_fee", true).Take(2))
	if len(rows) != 2 || rows[0].String("id") != "a2" || rows[1].String("id") != "a3" {
		t.Fatalf("unexpected fee order: %v", rows)
	}
}

func TestSelect_UnknownTableIsEmpty(t *testing.T) {
	s := NewRowStore()
	rows, err := s.Select(context.Background(), rowstore.Query{Table: "nothing"})
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected empty result, got %v %v", rows, err)
	}
}

func TestInsert_AssignsIDAndCreatedAt(t *testing.T) {
	s := NewRowStore()
	r, err := s.Insert(context.Background(), "contacts", rowstore.Row{"name": "Ayesha"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if r.String("id") == "" || !r.Has("created_at") {
		t.Fatalf("expected id and created_at, got %v", r)
	}
	if _, err := s.Insert(context.Background(), "contacts", rowstore.Row{"id": r.String("id")}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestUpdate_MergesAndKeepsID(t *testing.T) {
	s := NewRowStore()
	seed(t, s)

	r, err := s.Update(context.Background(), "animals", "a2", rowstore.Row{"id": "zzz", "status": "pending"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if r.String("id") != "a2" || r.String("status") != "pending" || r.String("name") != "Shadow" {
		t.Fatalf("unexpected row after update: %v", r)
	}

	if _, err := s.Update(context.Background(), "animals", "missing", rowstore.Row{}); !errors.Is(err, rowstore.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestSelectOne_NoRows(t *testing.T) {
	s := NewRowStore()
	seed(t, s)

	if _, err := s.SelectOne(context.Background(), "animals", "id", "nope"); !errors.Is(err, rowstore.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	r, err := s.SelectOne(context.Background(), "animals", "name", "Max")
	if err != nil || r.String("id") != "a3" {
		t.Fatalf("unexpected %v %v", r, err)
	}
}

func TestSelect_ReturnsCopies(t *testing.T) {
	s := NewRowStore()
	seed(t, s)

	rows, _ := s.Select(context.Background(), rowstore.Query{Table: "animals"})
	rows[0]["name"] = "changed"

	r, _ := s.SelectOne(context.Background(), "animals", "id", "a1")
	if r.String("name") != "Luna" {
		t.Fatalf("store mutated through returned row")
	}
}
