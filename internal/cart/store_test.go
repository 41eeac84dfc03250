package cart

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrinho.json")
	s := NewStore(path, zap.NewNop())

	in := []Item{
		{ID: "1", Name: "Dune", UnitPrice: 39.9, Quantity: 2, CoverURL: "http://covers/dune.jpg"},
		{ID: "2", Name: "Neuromancer", UnitPrice: 30, Quantity: 1},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := s.Load()
	if len(out) != len(in) {
		t.Fatalf("want %d items, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("item %d: want %+v, got %+v", i, in[i], out[i])
		}
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())

	if items := s.Load(); len(items) != 0 {
		t.Fatalf("missing file should load empty, got %+v", items)
	}
}

func TestStoreLoadCorruptContent(t *testing.T) {
	for _, raw := range []string{`{"id":"1"}`, `not json at all`} {
		path := filepath.Join(t.TempDir(), "carrinho.json")
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		s := NewStore(path, zap.NewNop())
		if items := s.Load(); len(items) != 0 {
			t.Fatalf("corrupt content %q should load empty, got %+v", raw, items)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("corrupt file should be removed, stat err: %v", err)
		}
	}
}

func TestStoreIndicatorHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrinho.json")
	s := NewStore(path, zap.NewNop())

	var counts []int
	s.OnChange(func(n int) { counts = append(counts, n) })

	_ = s.Load()
	if err := s.Save([]Item{{ID: "1", Quantity: 2}, {ID: "2", Quantity: 3}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if len(counts) != 2 || counts[0] != 0 || counts[1] != 5 {
		t.Fatalf("indicator should see 0 then 5, got %v", counts)
	}
}

func TestStoreSaveFailureStillFiresIndicator(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the write fail.
	path := filepath.Join(dir, "carrinho.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := NewStore(path, zap.NewNop())
	fired := false
	s.OnChange(func(int) { fired = true })

	if err := s.Save([]Item{{ID: "1", Quantity: 1}}); err == nil {
		t.Fatal("save onto a directory should fail")
	}
	if !fired {
		t.Fatal("indicator hook must fire even when the write fails")
	}
}
