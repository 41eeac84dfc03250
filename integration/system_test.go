//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"Estante/internal/cart"
	"Estante/internal/catalog"
	"Estante/internal/livraria"
	"Estante/internal/storefront"
)

type autoYes struct{ out bytes.Buffer }

func (n *autoYes) Success(msg string)  { n.out.WriteString("ok: " + msg + "\n") }
func (n *autoYes) Error(msg string)    { n.out.WriteString("error: " + msg + "\n") }
func (n *autoYes) Info(msg string)     { n.out.WriteString(msg + "\n") }
func (n *autoYes) Alert(msg string)    { n.out.WriteString("!! " + msg + "\n") }
func (n *autoYes) Confirm(string) bool { return true }

func TestStorefrontAgainstLivraria(t *testing.T) {
	srv := &livraria.Server{Store: livraria.NewEmptyMemStore(), Log: zap.NewNop()}
	ts := httptest.NewServer(livraria.NewHandler(srv, livraria.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "livraria",
	}))
	defer ts.Close()

	cartPath := filepath.Join(t.TempDir(), "carrinho.json")
	notify := &autoYes{}
	view := storefront.NewView(&bytes.Buffer{})

	app := storefront.New(catalog.NewClient(ts.URL),
		cart.NewStore(cartPath, zap.NewNop()), view, notify, zap.NewNop())

	ctx := context.Background()
	if err := app.Startup(ctx); err != nil {
		t.Fatalf("startup: %v", err)
	}

	// shelf a book and put two copies in the cart
	app.CreateBook(ctx, "Dom Casmurro", "4", "29,90")

	snap, ok := findByName(app, "Dom Casmurro")
	if !ok {
		t.Fatal("created book must be mirrored")
	}
	app.AddToCart(snap.ID)
	app.AddToCart(snap.ID)

	if app.Cart.Count() != 2 {
		t.Fatalf("want 2 in cart, got %d", app.Cart.Count())
	}

	// a fresh session sees the same cart
	app2 := storefront.New(catalog.NewClient(ts.URL),
		cart.NewStore(cartPath, zap.NewNop()),
		storefront.NewView(&bytes.Buffer{}), &autoYes{}, zap.NewNop())
	if err := app2.Startup(ctx); err != nil {
		t.Fatalf("second startup: %v", err)
	}
	if app2.Cart.Count() != 2 {
		t.Fatalf("cart must survive the restart, got %d", app2.Cart.Count())
	}

	// edit, then check out
	if !app.PrepareEdit(snap.ID) {
		t.Fatal("prepare edit")
	}
	app.UpdateBook(ctx, "9", "25,00")

	e, _ := app.Entry(snap.ID)
	if e.Quantity != 9 || e.Price != 25 {
		t.Fatalf("update must round-trip through the service: %+v", e)
	}

	app.Checkout()
	if app.Cart.Len() != 0 {
		t.Fatal("checkout must empty the cart")
	}
	if !strings.Contains(notify.out.String(), "59,80") {
		t.Fatalf("checkout total must be 59,80:\n%s", notify.out.String())
	}

	// and take the book off the shelf again
	app.DeleteBook(ctx, "Dom Casmurro")
	if _, ok := findByName(app, "Dom Casmurro"); ok {
		t.Fatal("deleted book must leave the mirror")
	}
}

func findByName(app *storefront.App, name string) (catalog.Entry, bool) {
	// ids are server-assigned, so resolve them through a fresh list
	books, err := app.Client.List(context.Background())
	if err != nil {
		return catalog.Entry{}, false
	}
	for _, b := range books {
		if b.Name == name {
			return b, true
		}
	}
	return catalog.Entry{}, false
}
