package storefront

import (
	"regexp"
	"strconv"
	"strings"

	"Estante/internal/cart"
	"Estante/internal/catalog"
)

type formMode int

const (
	modeCreate formMode = iota
	modeEditing
)

// Form is the shared create/edit form. It is a two-state machine: Create is
// the initial state, Editing is entered through PrepareEdit and always left
// through Reset, whatever the outcome of the update.
type Form struct {
	Name     string
	Quantity string
	Price    string

	mode           formMode
	nameLocked     bool
	originalName   string
	originalAuthor string
}

// PrepareEdit fills the form from a catalog entry, locks the name field and
// records the session's original name and author.
func (f *Form) PrepareEdit(e catalog.Entry) {
	f.Name = e.Name
	f.Quantity = strconv.Itoa(e.Quantity)
	f.Price = strconv.FormatFloat(e.Price, 'f', 2, 64)
	f.nameLocked = true
	f.originalName = e.Name
	f.originalAuthor = e.Author
	f.mode = modeEditing
}

// Reset clears the fields, unlocks the name and returns to create mode.
func (f *Form) Reset() {
	f.Name = ""
	f.Quantity = ""
	f.Price = ""
	f.nameLocked = false
	f.originalName = ""
	f.originalAuthor = ""
	f.mode = modeCreate
}

// Editing reports the active edit session, if any.
func (f *Form) Editing() (name, author string, ok bool) {
	if f.mode != modeEditing || f.originalName == "" {
		return "", "", false
	}
	return f.originalName, f.originalAuthor, true
}

func (f *Form) NameLocked() bool { return f.nameLocked }

// SubmitLabel mirrors the primary button: what submitting the form will do.
func (f *Form) SubmitLabel() string {
	if f.mode == modeEditing {
		return "save changes"
	}
	return "add book"
}

// Letters including the accented set used by Portuguese titles, plus space,
// hyphen, apostrophe and period.
var nameRE = regexp.MustCompile(`^[a-zA-ZáéíóúâêôãõçÁÉÍÓÚÂÊÔÃÕÇ\s\-'.]+$`)

var digitRE = regexp.MustCompile(`\d`)

// ValidName gates book names on create: trimmed length 3..100, restricted
// character set, at least two distinct characters, no digits.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)

	if n := len([]rune(trimmed)); n < 3 || n > 100 {
		return false
	}
	if !nameRE.MatchString(trimmed) {
		return false
	}

	distinct := map[rune]struct{}{}
	for _, r := range trimmed {
		distinct[r] = struct{}{}
	}
	if len(distinct) <= 1 {
		return false
	}

	return !digitRE.MatchString(trimmed)
}

// ValidateNumbers gates the quantity and price fields, shared by create and
// update. The returned price string is period-normalized for transmission.
func ValidateNumbers(quantity, price string) (qty string, normPrice string, ok bool) {
	quantity = strings.TrimSpace(quantity)
	price = strings.TrimSpace(price)
	if quantity == "" || price == "" {
		return "", "", false
	}
	if _, err := strconv.Atoi(quantity); err != nil {
		return "", "", false
	}
	if _, err := cart.ParsePrice(price); err != nil {
		return "", "", false
	}
	return quantity, cart.NormalizePrice(price), true
}
