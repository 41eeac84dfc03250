package livraria

import (
	"context"
	"testing"
)

func TestMemStoreCreateAndList(t *testing.T) {
	s := NewEmptyMemStore()
	ctx := context.Background()

	books := []Book{
		{ID: "l_1", Name: "Dune", Quantity: 3, Price: 39.9},
		{ID: "l_2", Name: "Neuromancer", Quantity: 1, Price: 30},
	}
	for _, b := range books {
		if err := s.Create(ctx, b); err != nil {
			t.Fatalf("create %s: %v", b.Name, err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "l_1" || got[1].ID != "l_2" {
		t.Fatalf("insertion order must hold: %+v", got)
	}
}

func TestMemStoreDuplicateName(t *testing.T) {
	s := NewEmptyMemStore()
	ctx := context.Background()

	if err := s.Create(ctx, Book{ID: "l_1", Name: "Dune"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, Book{ID: "l_2", Name: "  DUNE "}); err != ErrDuplicate {
		t.Fatalf("want ErrDuplicate for case-insensitive collision, got %v", err)
	}
}

func TestMemStoreUpdate(t *testing.T) {
	s := NewEmptyMemStore()
	ctx := context.Background()
	_ = s.Create(ctx, Book{ID: "l_1", Name: "Dune", Author: "?", Quantity: 1, Price: 10})

	b, err := s.Update(ctx, "dune", Fields{Author: "Frank Herbert", Quantity: 9, Price: 42})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Author != "Frank Herbert" || b.Quantity != 9 || b.Price != 42 {
		t.Fatalf("unexpected row: %+v", b)
	}
	if b.ID != "l_1" || b.Name != "Dune" {
		t.Fatalf("id and name must not change: %+v", b)
	}

	if _, err := s.Update(ctx, "missing", Fields{}); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMemStoreDelete(t *testing.T) {
	s := NewEmptyMemStore()
	ctx := context.Background()
	_ = s.Create(ctx, Book{ID: "l_1", Name: "Dune"})

	if err := s.Delete(ctx, "Dune"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "Dune"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound on second delete, got %v", err)
	}
}
