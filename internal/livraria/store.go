// Package livraria implements the bookstore service the storefront talks
// to: the livros_list / livro_adiciona / livro_update / livro_del contract
// over a pluggable store.
package livraria

import (
	"context"
	"errors"
)

var (
	ErrDuplicate = errors.New("book already exists")
	ErrNotFound  = errors.New("book not found")
)

// Book is a stored catalog entry. The JSON keys are the contract's.
type Book struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome"`
	Author      string  `json:"autor"`
	Quantity    int     `json:"quantidade"`
	Price       float64 `json:"valor"`
	CoverURL    string  `json:"capa_url,omitempty"`
	Description string  `json:"descricao,omitempty"`
}

// Fields is the updatable subset; the name keys the update and never
// changes through it.
type Fields struct {
	Author   string  `json:"autor"`
	Quantity int     `json:"quantidade"`
	Price    float64 `json:"valor"`
}

type Store interface {
	Ping(ctx context.Context) error
	// List returns books in insertion order.
	List(ctx context.Context) ([]Book, error)
	// Create stores a new book; a name collision (case-insensitive) is
	// ErrDuplicate.
	Create(ctx context.Context, b Book) error
	// Update patches the book keyed by name and returns the stored row.
	Update(ctx context.Context, name string, f Fields) (Book, error)
	// Delete removes the book keyed by name.
	Delete(ctx context.Context, name string) error
}
