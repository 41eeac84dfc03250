package storefront

import (
	"fmt"
	"io"

	"Estante/internal/cart"
	"Estante/internal/catalog"
)

// View renders the catalog and the cart as text. It is deliberately dumb:
// it draws whatever state it is handed and holds none of its own.
type View struct {
	Out io.Writer
}

func NewView(out io.Writer) *View { return &View{Out: out} }

// Indicator shows the summed quantity of everything in the cart.
func (v *View) Indicator(count int) {
	fmt.Fprintf(v.Out, "cart: %d item(s)\n", count)
}

// Catalog draws one card per entry, in the order given.
func (v *View) Catalog(entries []catalog.Entry) {
	fmt.Fprintln(v.Out, "---- catalog ----")
	if len(entries) == 0 {
		fmt.Fprintln(v.Out, "(no books on the shelf)")
		return
	}
	for _, e := range entries {
		v.card(e)
	}
}

func (v *View) card(e catalog.Entry) {
	title := e.Name
	if e.Description != "" {
		title = fmt.Sprintf("%s (%s)", e.Name, e.Description)
	}

	cover := e.CoverURL
	if cover == "" {
		cover = "[no cover]"
	}

	fmt.Fprintf(v.Out, "[%s] %s\n", e.ID, title)
	fmt.Fprintf(v.Out, "      %s\n", e.Author)
	fmt.Fprintf(v.Out, "      %s\n", cover)
	fmt.Fprintf(v.Out, "      R$ %s | stock: %d", cart.FormatPrice(e.Price), e.Quantity)
	if e.Quantity <= 0 {
		fmt.Fprint(v.Out, " | out of stock, add-to-cart disabled")
	}
	fmt.Fprintln(v.Out)
}

// Cart draws every line item with its quantity controls and the running
// total, or the literal empty message.
func (v *View) Cart(items []cart.Item, total string) {
	fmt.Fprintln(v.Out, "---- cart ----")
	if len(items) == 0 {
		fmt.Fprintln(v.Out, "Your cart is empty.")
	}
	for _, it := range items {
		cover := it.CoverURL
		if cover == "" {
			cover = "[no cover]"
		}
		fmt.Fprintf(v.Out, "%s  %s\n", cover, it.Name)
		fmt.Fprintf(v.Out, "      unit R$ %s | qty %d  (qty %s +1 | qty %s -1 | remove %s)\n",
			cart.FormatPrice(it.UnitPrice), it.Quantity, it.ID, it.ID, it.ID)
	}
	fmt.Fprintf(v.Out, "total: R$ %s\n", total)
}
