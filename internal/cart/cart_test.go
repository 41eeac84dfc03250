package cart

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func newCart(t *testing.T) *Cart {
	t.Helper()
	return New(zap.NewNop())
}

func TestAddIncrementsSameID(t *testing.T) {
	c := newCart(t)

	for i := 0; i < 3; i++ {
		if err := c.Add("1", "Dune", 39.9, ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("want 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("want quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddNormalizesID(t *testing.T) {
	c := newCart(t)

	if err := c.Add(" 7 ", "Dom Casmurro", 25, ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add("7", "Dom Casmurro", 25, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("ids should compare after normalization, got %d lines", c.Len())
	}
}

func TestAddRejectsInvalidPrice(t *testing.T) {
	c := newCart(t)

	if err := c.Add("1", "Dune", math.NaN(), ""); err != ErrInvalidPrice {
		t.Fatalf("want ErrInvalidPrice, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("cart should be unchanged, got %d lines", c.Len())
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := newCart(t)
	_ = c.Add("1", "Dune", 39.9, "")
	_ = c.Add("2", "Neuromancer", 30, "")

	if !c.UpdateQuantity("1", 2) {
		t.Fatal("update should report a change")
	}
	if got := c.Items()[0].Quantity; got != 3 {
		t.Fatalf("want quantity 3, got %d", got)
	}
	if got := c.Items()[1].Quantity; got != 1 {
		t.Fatalf("other line must not change, got %d", got)
	}
}

func TestUpdateQuantityToZeroRemoves(t *testing.T) {
	c := newCart(t)
	_ = c.Add("1", "Dune", 39.9, "")
	_ = c.Add("1", "Dune", 39.9, "")

	if !c.UpdateQuantity("1", -2) {
		t.Fatal("update should report a change")
	}
	if c.Len() != 0 {
		t.Fatalf("line should be removed, got %d lines", c.Len())
	}
}

func TestUpdateQuantityMissingIDNoOps(t *testing.T) {
	c := newCart(t)
	_ = c.Add("1", "Dune", 39.9, "")

	if c.UpdateQuantity("99", 1) {
		t.Fatal("missing id should not report a change")
	}
	if got := c.Items()[0].Quantity; got != 1 {
		t.Fatalf("cart must be untouched, got quantity %d", got)
	}
}

func TestRemove(t *testing.T) {
	c := newCart(t)
	_ = c.Add("1", "Dune", 39.9, "")
	_ = c.Add("2", "Neuromancer", 30, "")

	if !c.Remove("1") {
		t.Fatal("remove should report a change")
	}
	if c.Len() != 1 || c.Items()[0].ID != "2" {
		t.Fatalf("unexpected cart after remove: %+v", c.Items())
	}

	if c.Remove("1") {
		t.Fatal("second remove should be a no-op")
	}
}

func TestTotalFormatting(t *testing.T) {
	c := newCart(t)

	if got := FormatPrice(c.Total()); got != "0,00" {
		t.Fatalf("empty cart total: want 0,00, got %s", got)
	}

	_ = c.Add("1", "Dune", 39.9, "")
	if got := FormatPrice(c.Total()); got != "39,90" {
		t.Fatalf("want 39,90, got %s", got)
	}

	_ = c.Add("1", "Dune", 39.9, "")
	if got := FormatPrice(c.Total()); got != "79,80" {
		t.Fatalf("want 79,80, got %s", got)
	}

	_ = c.Add("2", "Neuromancer", 0.05, "")
	if got := FormatPrice(c.Total()); got != "79,85" {
		t.Fatalf("want 79,85, got %s", got)
	}
}

func TestTotalCoercesBadStoredValues(t *testing.T) {
	c := newCart(t)
	c.Replace([]Item{
		{ID: "1", Name: "Dune", UnitPrice: math.NaN(), Quantity: 2},
		{ID: "2", Name: "Neuromancer", UnitPrice: 10, Quantity: 1},
	})

	if got := c.Total(); got != 10 {
		t.Fatalf("NaN price must count as zero, got %v", got)
	}
}

func TestCount(t *testing.T) {
	c := newCart(t)
	_ = c.Add("1", "Dune", 39.9, "")
	_ = c.Add("1", "Dune", 39.9, "")
	_ = c.Add("2", "Neuromancer", 30, "")

	if got := c.Count(); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
}

func TestParsePrice(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"39.90", 39.9},
		{"39,90", 39.9},
		{" 10 ", 10},
	} {
		got, err := ParsePrice(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: want %v, got %v", tc.in, tc.want, got)
		}
	}

	if _, err := ParsePrice("abc"); err == nil {
		t.Fatal("non-numeric price should not parse")
	}
}
