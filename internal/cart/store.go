package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store persists the cart as a JSON array in a single file, the session's
// durable slot. Absent or malformed content is never fatal: it just means
// an empty cart.
type Store struct {
	path     string
	log      *zap.Logger
	onChange func(count int)
}

func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// OnChange registers the indicator hook, invoked with the summed quantity
// after every Load and Save, whatever their outcome.
func (s *Store) OnChange(fn func(count int)) { s.onChange = fn }

// Load reads the persisted cart. A missing file yields an empty cart.
// Content that does not parse as an item array is logged, discarded and the
// corrupt file removed, also yielding an empty cart.
func (s *Store) Load() []Item {
	items := s.read()
	s.notify(items)
	return items
}

func (s *Store) read() []Item {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.log.Warn("cart file unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		return nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("cart file corrupt, discarding", zap.String("path", s.path), zap.Error(err))
		if rmErr := os.Remove(s.path); rmErr != nil {
			s.log.Warn("could not remove corrupt cart file", zap.Error(rmErr))
		}
		return nil
	}
	return items
}

// Save writes the cart. On failure the error is returned for the caller to
// surface; the in-memory cart is not touched either way. The indicator hook
// still fires so the visible count tracks memory, not disk.
func (s *Store) Save(items []Item) error {
	defer s.notify(items)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cart store: %w", err)
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("cart store: %w", err)
	}
	return nil
}

func (s *Store) notify(items []Item) {
	if s.onChange == nil {
		return
	}
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	s.onChange(n)
}
