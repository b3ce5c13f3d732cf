package yieldbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/yieldbook/date"
	"github.com/google/uuid"
)

// ProductStore owns the collection of purchased products.
//
// Every mutation calls save with the full next collection before it returns,
// and the store only adopts that collection if save succeeded.
type ProductStore struct {
	products []Product
	save     func([]Product) error

	today func() date.Date // clock for redemption dates
	newID func() string
}

// NewProductStore returns a store initialized with products (not copied),
// saving through save. A nil save keeps the store in memory only.
func NewProductStore(products []Product, save func([]Product) error) *ProductStore {
	if save == nil {
		save = func([]Product) error { return nil }
	}
	return &ProductStore{
		products: products,
		save:     save,
		today:    date.Today,
		newID:    uuid.NewString,
	}
}

// Products returns a copy of all products in insertion order.
func (s *ProductStore) Products() []Product { return slices.Clone(s.products) }

// Len returns the number of products.
func (s *ProductStore) Len() int { return len(s.products) }

// Find returns the product with the given id.
func (s *ProductStore) Find(id string) (Product, bool) {
	i := s.index(id)
	if i < 0 {
		return Product{}, false
	}
	return s.products[i], true
}

func (s *ProductStore) index(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

// commit saves next and adopts it.
func (s *ProductStore) commit(next []Product) error {
	if err := s.save(next); err != nil {
		return fmt.Errorf("cannot save products: %w", err)
	}
	s.products = next
	return nil
}

// Add appends a new product with a fresh id. The product always starts not
// redeemed. Shares are taken as given, see [NewProductData].
func (s *ProductStore) Add(data ProductData) (Product, error) {
	p := Product{
		ID:          s.newID(),
		ProductData: data,
	}
	next := append(slices.Clone(s.products), p)
	if err := s.commit(next); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update applies changes to the product with the given id. The id and the
// shares of the product are never changed.
func (s *ProductStore) Update(id string, changes ...ProductChange) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("cannot update %q: %w", id, ErrNotFound)
	}
	p := s.products[i]
	for _, change := range changes {
		change(&p)
	}
	p.ID, p.Shares = s.products[i].ID, s.products[i].Shares

	next := slices.Clone(s.products)
	next[i] = p
	return s.commit(next)
}

// Delete removes the product with the given id. Its query records are left
// untouched, see [RecordStore.DeleteFor].
func (s *ProductStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("cannot delete %q: %w", id, ErrNotFound)
	}
	next := slices.Delete(slices.Clone(s.products), i, i+1)
	return s.commit(next)
}

// ToggleRedeemed flips the redeemed state of a product. Redeeming sets the
// redemption date to today, undoing it clears the date.
func (s *ProductStore) ToggleRedeemed(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("cannot toggle redemption of %q: %w", id, ErrNotFound)
	}
	p := s.products[i]
	p.Redeemed = !p.Redeemed
	if p.Redeemed {
		today := s.today()
		p.RedemptionDate = &today
	} else {
		p.RedemptionDate = nil
	}

	next := slices.Clone(s.products)
	next[i] = p
	return s.commit(next)
}

// ReplaceAll replaces the whole collection, as an import does.
func (s *ProductStore) ReplaceAll(products []Product) error {
	return s.commit(slices.Clone(products))
}

// Lookup finds a product from a user reference: its id, a unique prefix of
// its id, or its product code when that code is unique.
func (s *ProductStore) Lookup(ref string) (Product, error) {
	if ref == "" {
		return Product{}, fmt.Errorf("empty product reference: %w", ErrNotFound)
	}
	if p, ok := s.Find(ref); ok {
		return p, nil
	}
	var byPrefix, byCode []Product
	for _, p := range s.products {
		if strings.HasPrefix(p.ID, ref) {
			byPrefix = append(byPrefix, p)
		}
		if p.ProductCode == ref {
			byCode = append(byCode, p)
		}
	}
	switch {
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return Product{}, fmt.Errorf("ambiguous product reference %q matches %d ids", ref, len(byPrefix))
	case len(byCode) == 1:
		return byCode[0], nil
	case len(byCode) > 1:
		return Product{}, fmt.Errorf("ambiguous product reference %q matches %d product codes", ref, len(byCode))
	}
	return Product{}, fmt.Errorf("no product %q: %w", ref, ErrNotFound)
}
