package livraria

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	pgUniqueViolation = "23505"
)

// PostgresStore expects a livros table with a serial position column (for
// insertion order) and a unique index on lower(nome).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Book, error) {
	var out []Book

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, nome, autor, quantidade, valor,
			       COALESCE(capa_url, ''), COALESCE(descricao, '')
			FROM livros
			ORDER BY pos ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Book, 0, 16)
		for rows.Next() {
			var b Book
			if err := rows.Scan(&b.ID, &b.Name, &b.Author, &b.Quantity, &b.Price, &b.CoverURL, &b.Description); err != nil {
				return err
			}
			out = append(out, b)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, b Book) error {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO livros (id, nome, autor, quantidade, valor, capa_url, descricao)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		`, b.ID, strings.TrimSpace(b.Name), b.Author, b.Quantity, b.Price, b.CoverURL, b.Description)
		return err
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (s *PostgresStore) Update(ctx context.Context, name string, f Fields) (Book, error) {
	var b Book

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			UPDATE livros
			SET autor = $2, quantidade = $3, valor = $4
			WHERE lower(nome) = lower($1)
			RETURNING id, nome, autor, quantidade, valor,
			          COALESCE(capa_url, ''), COALESCE(descricao, '')
		`, strings.TrimSpace(name), f.Author, f.Quantity, f.Price).
			Scan(&b.ID, &b.Name, &b.Author, &b.Quantity, &b.Price, &b.CoverURL, &b.Description)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	var affected int64

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM livros WHERE lower(nome) = lower($1)
		`, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
