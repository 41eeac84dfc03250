package livraria

import (
	"context"
	"strings"
	"sync"
)

type MemStore struct {
	mu    sync.RWMutex
	books []Book
}

// NewMemStore seeds a small shelf so a fresh storefront has something to
// render.
func NewMemStore() *MemStore {
	return &MemStore{books: []Book{
		{
			ID: "l_dom_casmurro", Name: "Dom Casmurro", Author: "Machado de Assis",
			Quantity: 4, Price: 29.9,
			Description: "Bento, Capitu e a dúvida.",
		},
		{
			ID: "l_alquimista", Name: "O Alquimista", Author: "Paulo Coelho",
			Quantity: 7, Price: 34.5,
		},
		{
			ID: "l_sertoes", Name: "Os Sertões", Author: "Euclides da Cunha",
			Quantity: 0, Price: 49.9,
		},
	}}
}

func NewEmptyMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *MemStore) Create(ctx context.Context, b Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByName(b.Name) >= 0 {
		return ErrDuplicate
	}
	s.books = append(s.books, b)
	return nil
}

func (s *MemStore) Update(ctx context.Context, name string, f Fields) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByName(name)
	if i < 0 {
		return Book{}, ErrNotFound
	}

	s.books[i].Author = f.Author
	s.books[i].Quantity = f.Quantity
	s.books[i].Price = f.Price
	return s.books[i], nil
}

func (s *MemStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByName(name)
	if i < 0 {
		return ErrNotFound
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	return nil
}

func (s *MemStore) indexByName(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, b := range s.books {
		if strings.ToLower(strings.TrimSpace(b.Name)) == want {
			return i
		}
	}
	return -1
}
