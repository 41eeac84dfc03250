package storefront

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"Estante/internal/cart"
	"Estante/internal/catalog"
)

// App wires the cart, the catalog client, the form and the views together.
// It keeps a typed mirror of the catalog (id -> entry, plus order) populated
// from service responses; every read goes through the mirror, never through
// rendered output.
type App struct {
	Client *catalog.Client
	Cart   *cart.Cart
	Store  *cart.Store
	View   *View
	Form   *Form
	Notify Notifier
	Log    *zap.Logger

	mu       sync.Mutex
	entries  map[string]catalog.Entry
	order    []string
	inflight map[string]struct{}
}

func New(client *catalog.Client, store *cart.Store, view *View, notify Notifier, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		Client:   client,
		Cart:     cart.New(log),
		Store:    store,
		View:     view,
		Form:     &Form{},
		Notify:   notify,
		Log:      log,
		entries:  map[string]catalog.Entry{},
		inflight: map[string]struct{}{},
	}
	store.OnChange(view.Indicator)
	return a
}

// Startup restores the persisted cart and fetches the catalog.
func (a *App) Startup(ctx context.Context) error {
	a.Cart.Replace(a.Store.Load())
	return a.Refresh(ctx)
}

// Refresh rebuilds the mirror and the catalog view from the service. On
// failure the previous mirror stays as it was.
func (a *App) Refresh(ctx context.Context) error {
	books, err := a.Client.List(ctx)
	if err != nil {
		a.Log.Error("catalog fetch failed", zap.Error(err))
		a.Notify.Alert("Could not load the book list from the server.")
		return err
	}

	a.mu.Lock()
	a.entries = make(map[string]catalog.Entry, len(books))
	a.order = make([]string, 0, len(books))
	for _, b := range books {
		a.entries[b.ID] = b
		a.order = append(a.order, b.ID)
	}
	a.mu.Unlock()

	a.renderCatalog()
	return nil
}

// Entry looks a book up in the mirror by id.
func (a *App) Entry(id string) (catalog.Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.entries[strings.TrimSpace(id)]
	return e, ok
}

// AddToCart puts one unit of the mirrored entry in the cart. Out-of-stock
// entries refuse, matching their disabled card button.
func (a *App) AddToCart(id string) {
	e, ok := a.Entry(id)
	if !ok {
		a.Log.Warn("add to cart for unknown book", zap.String("id", id))
		return
	}
	if e.Quantity <= 0 {
		a.Notify.Error(fmt.Sprintf("%s is out of stock.", e.Name))
		return
	}

	if err := a.Cart.Add(e.ID, e.Name, e.Price, e.CoverURL); err != nil {
		a.Notify.Error("This book has an invalid price.")
		return
	}
	a.persistCart()
	a.Notify.Success(fmt.Sprintf("%s was added to the cart!", e.Name))
}

// ChangeQuantity applies a +/- control press.
func (a *App) ChangeQuantity(id string, delta int) {
	if a.Cart.UpdateQuantity(id, delta) {
		a.persistCart()
		a.ShowCart()
	}
}

// RemoveFromCart drops a line item entirely.
func (a *App) RemoveFromCart(id string) {
	if a.Cart.Remove(id) {
		a.persistCart()
		a.ShowCart()
	}
}

// ShowCart redraws the cart view with a fresh total.
func (a *App) ShowCart() {
	a.View.Cart(a.Cart.Items(), cart.FormatPrice(a.Cart.Total()))
}

// Checkout is a local simulation: it announces the total and empties the
// cart. The service is never contacted.
func (a *App) Checkout() {
	if a.Cart.Len() == 0 {
		a.Notify.Error("Your cart is empty, nothing to check out.")
		return
	}

	total := cart.FormatPrice(a.Cart.Total())
	a.Notify.Success(fmt.Sprintf("Order placed! Total: R$ %s. Your cart will be emptied.", total))

	a.Cart.Empty()
	a.persistCart()
	a.ShowCart()
}

// CreateBook validates, checks for a duplicate title against the mirror and
// submits the create. The service assigns the id and echoes the entry.
func (a *App) CreateBook(ctx context.Context, name, quantity, price string) {
	if !ValidName(name) {
		a.Notify.Error("Invalid book name.")
		return
	}
	qty, normPrice, ok := ValidateNumbers(quantity, price)
	if !ok {
		a.Notify.Error("Quantity and price are required and must be numeric.")
		return
	}
	if a.hasTitle(name) {
		a.Notify.Error("This book is already on the shelf!")
		return
	}

	key := "create:" + strings.ToLower(strings.TrimSpace(name))
	if !a.begin(key) {
		a.Log.Warn("create already in flight", zap.String("name", name))
		return
	}
	defer a.end(key)

	e, err := a.Client.Create(ctx, strings.TrimSpace(name), qty, normPrice)
	if err != nil {
		a.Notify.Error("Could not add the book: " + err.Error())
		return
	}

	a.mu.Lock()
	a.entries[e.ID] = e
	a.order = append(a.order, e.ID)
	a.mu.Unlock()

	a.Form.Reset()
	a.renderCatalog()
	a.Notify.Success("Book added!")
}

// PrepareEdit begins an edit session for the mirrored entry.
func (a *App) PrepareEdit(id string) bool {
	e, ok := a.Entry(id)
	if !ok {
		a.Log.Warn("edit for unknown book", zap.String("id", id))
		return false
	}
	a.Form.PrepareEdit(e)
	a.Notify.Info(fmt.Sprintf("Editing %q (name is locked). Submit will %s.", e.Name, a.Form.SubmitLabel()))
	return true
}

// UpdateBook submits the active edit session. The session always ends after
// the request, on success or failure; a validation failure keeps it open for
// correction.
func (a *App) UpdateBook(ctx context.Context, quantity, price string) {
	name, author, ok := a.Form.Editing()
	if !ok {
		a.Form.Reset()
		return
	}

	qty, normPrice, ok := ValidateNumbers(quantity, price)
	if !ok {
		a.Notify.Error("Quantity and price are required and must be numeric.")
		return
	}

	key := "update:" + strings.ToLower(name)
	if !a.begin(key) {
		a.Log.Warn("update already in flight", zap.String("name", name))
		return
	}
	defer a.end(key)
	defer a.Form.Reset()

	qtyInt, _ := strconv.Atoi(qty)
	priceF, _ := cart.ParsePrice(normPrice)

	updated, err := a.Client.Update(ctx, name, catalog.UpdatePayload{
		Author:   author,
		Quantity: qtyInt,
		Price:    priceF,
	})
	if err != nil {
		a.Notify.Error("Could not update the book: " + err.Error())
		return
	}

	a.mu.Lock()
	patched := false
	for id, e := range a.entries {
		if e.Name == name {
			e.Author = updated.Author
			e.Quantity = updated.Quantity
			e.Price = updated.Price
			if updated.Description != "" {
				e.Description = updated.Description
			}
			a.entries[id] = e
			patched = true
			break
		}
	}
	a.mu.Unlock()

	if !patched {
		a.Log.Warn("updated book not found in mirror", zap.String("name", name))
	}
	a.renderCatalog()
	a.Notify.Success(fmt.Sprintf("%q was updated!", name))
}

// DeleteBook confirms, removes the card optimistically and issues the
// delete. A failed delete puts the entry back where it was.
func (a *App) DeleteBook(ctx context.Context, name string) {
	e, idx, ok := a.entryByName(name)
	if !ok {
		a.Log.Warn("delete for unknown book", zap.String("name", name))
		return
	}

	if !a.Notify.Confirm(fmt.Sprintf("Really remove %q from the shelf?", e.Name)) {
		return
	}

	key := "delete:" + strings.ToLower(name)
	if !a.begin(key) {
		a.Log.Warn("delete already in flight", zap.String("name", name))
		return
	}
	defer a.end(key)

	a.mu.Lock()
	delete(a.entries, e.ID)
	a.order = append(a.order[:idx], a.order[idx+1:]...)
	a.mu.Unlock()

	a.renderCatalog()
	a.Notify.Success("Book removed!")

	if err := a.Client.Delete(ctx, e.Name); err != nil {
		a.mu.Lock()
		a.entries[e.ID] = e
		if idx > len(a.order) {
			idx = len(a.order)
		}
		a.order = append(a.order[:idx], append([]string{e.ID}, a.order[idx:]...)...)
		a.mu.Unlock()

		a.renderCatalog()
		a.Notify.Error("Could not delete the book: " + err.Error())
	}
}

func (a *App) persistCart() {
	if err := a.Store.Save(a.Cart.Items()); err != nil {
		a.Log.Error("cart save failed", zap.Error(err))
		a.Notify.Alert("Could not save your cart. Storage may be full.")
	}
}

func (a *App) renderCatalog() {
	a.View.Catalog(a.snapshot())
}

func (a *App) snapshot() []catalog.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]catalog.Entry, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.entries[id])
	}
	return out
}

func (a *App) hasTitle(name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entries {
		if strings.ToLower(strings.TrimSpace(e.Name)) == want {
			return true
		}
	}
	return false
}

func (a *App) entryByName(name string) (catalog.Entry, int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, id := range a.order {
		if a.entries[id].Name == name {
			return a.entries[id], i, true
		}
	}
	return catalog.Entry{}, 0, false
}

func (a *App) begin(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, busy := a.inflight[key]; busy {
		return false
	}
	a.inflight[key] = struct{}{}
	return true
}

func (a *App) end(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inflight, key)
}
