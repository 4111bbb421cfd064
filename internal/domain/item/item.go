package item

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNilBasket is returned when a basket-consuming operation receives no basket.
var ErrNilBasket = errors.New("basket is required")

// Name identifies a kind of item the shop sells.
type Name int

const (
	Soup Name = iota
	Bread
	Milk
	Apples
)

var names = [...]string{
	Soup:   "Soup",
	Bread:  "Bread",
	Milk:   "Milk",
	Apples: "Apples",
}

// All returns every known item in declaration order.
func All() []Name {
	return []Name{Soup, Bread, Milk, Apples}
}

func (n Name) String() string {
	if n < 0 || int(n) >= len(names) {
		return "Name(" + strconv.Itoa(int(n)) + ")"
	}
	return names[n]
}

// UnknownError indicates a token that does not name a known item.
type UnknownError struct {
	Token string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown item %q", e.Token)
}

// Parse matches token against the item names, ignoring case. Numeric tokens
// are never accepted.
func Parse(token string) (Name, error) {
	if _, err := strconv.Atoi(token); err == nil {
		return 0, &UnknownError{Token: token}
	}
	for i, s := range names {
		if strings.EqualFold(s, token) {
			return Name(i), nil
		}
	}
	return 0, &UnknownError{Token: token}
}

// Basket is the list of items being priced. Order is irrelevant, only counts
// matter. A nil Basket is treated as absent.
type Basket []Name

// Count returns how many times name appears in the basket.
func (b Basket) Count(name Name) int {
	n := 0
	for _, it := range b {
		if it == name {
			n++
		}
	}
	return n
}

// ParseBasket splits text on whitespace and parses each lowercased token.
// The returned basket is never nil. Tokens that could not be parsed are
// returned in input order.
func ParseBasket(text string) (Basket, []string) {
	fields := strings.Fields(strings.ToLower(text))

	basket := make(Basket, 0, len(fields))
	var rejected []string
	for _, tok := range fields {
		n, err := Parse(tok)
		if err != nil {
			rejected = append(rejected, tok)
			continue
		}
		basket = append(basket, n)
	}
	return basket, rejected
}
