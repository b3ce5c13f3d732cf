package yieldbook

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/etnz/yieldbook/date"
)

// memStorage is an in-memory Storage for tests.
type memStorage struct {
	blobs map[string][]byte
	fail  map[string]bool // keys whose Save fails
	saves int
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte), fail: make(map[string]bool)}
}

func (m *memStorage) Load(key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", key, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memStorage) Save(key string, data []byte) error {
	if m.fail[key] {
		return errors.New("disk full")
	}
	m.saves++
	m.blobs[key] = data
	return nil
}

// D is a helper for test to create a date from a const.
func D(s string) date.Date { return date.MustParse(s) }

// sequentialIDs returns an id generator producing "id-1", "id-2", ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// fixedDay returns a clock always returning day.
func fixedDay(day string) func() date.Date {
	d := D(day)
	return func() date.Date { return d }
}

// newTestProduct returns the data of a typical purchase.
func newTestProduct(name string, on string, netValue, amount float64) ProductData {
	data, err := NewProductData(name, "", D(on), netValue, amount)
	if err != nil {
		panic(err)
	}
	return data
}
