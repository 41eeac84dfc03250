package livraria

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"Estante/pkg/kit"
)

const maxUpdateBody = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

// RouteOptions tunes the mutating side of the contract. A nil Admin leaves
// mutations open, like the service this simulates; a nil CreateLimit skips
// rate limiting.
type RouteOptions struct {
	Admin       *TokenMaker
	CreateLimit *kit.IPRateLimiter
}

func (s *Server) Routes(opts RouteOptions) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/livros_list", s.list)

	r.Group(func(pr chi.Router) {
		if opts.Admin != nil {
			pr.Use(RequireAdmin(opts.Admin))
		}

		if opts.CreateLimit != nil {
			pr.With(opts.CreateLimit.Middleware).Post("/livro_adiciona", s.create)
		} else {
			pr.Post("/livro_adiciona", s.create)
		}

		pr.Put("/livro_update", s.update)
		pr.Delete("/livro_del", s.del)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	books, err := s.Store.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list books failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"livros": books})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad form", nil)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("nome"))
	if name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "nome is required", nil)
		return
	}

	qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantidade")))
	if err != nil || qty < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "quantidade must be a non-negative integer", nil)
		return
	}

	priceStr := strings.Replace(strings.TrimSpace(r.PostFormValue("valor")), ",", ".", 1)
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "valor must be a non-negative number", nil)
		return
	}

	b := Book{
		ID:       "l_" + uuid.NewString(),
		Name:     name,
		Quantity: qty,
		Price:    price,
	}

	if err := s.Store.Create(r.Context(), b); err != nil {
		if errors.Is(err, ErrDuplicate) {
			kit.WriteError(w, r, http.StatusConflict, "book already exists", map[string]any{"nome": name})
			return
		}
		if s.Log != nil {
			s.Log.Error("create book failed", zap.Error(err), zap.String("nome", name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, b)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("nome"))
	if name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "nome query parameter is required", nil)
		return
	}

	f, err := decodeFields(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if f.Quantity < 0 || f.Price < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "quantidade and valor must be non-negative", nil)
		return
	}

	b, err := s.Store.Update(r.Context(), name, f)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "book not found", map[string]any{"nome": name})
			return
		}
		if s.Log != nil {
			s.Log.Error("update book failed", zap.Error(err), zap.String("nome", name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, b)
}

func (s *Server) del(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("nome"))
	if name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "nome query parameter is required", nil)
		return
	}

	if err := s.Store.Delete(r.Context(), name); err != nil {
		if errors.Is(err, ErrNotFound) {
			kit.WriteError(w, r, http.StatusNotFound, "book not found", map[string]any{"nome": name})
			return
		}
		if s.Log != nil {
			s.Log.Error("delete book failed", zap.Error(err), zap.String("nome", name))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

func decodeFields(w http.ResponseWriter, r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpdateBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var f Fields
	if err := dec.Decode(&f); err != nil {
		return Fields{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Fields{}, errors.New("extra data after json object")
	}

	return f, nil
}
