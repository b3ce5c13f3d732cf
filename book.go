package yieldbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/etnz/yieldbook/date"
	"go.uber.org/zap"
)

// Keys of the two blobs persisted in a [Storage].
const (
	ProductsKey = "financialProducts"
	RecordsKey  = "queryRecords"
)

// Storage persists blobs by key.
//
// Load returns an error matching fs.ErrNotExist for a key that was never
// saved.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Book binds a product store and a record store to a storage.
//
// Each store is persisted in its own blob, a JSON array, and each blob is
// loaded independently: records may reference products that do not exist.
type Book struct {
	Products *ProductStore
	Records  *RecordStore

	storage Storage
	log     *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger for storage access and data quality warnings.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) { b.log = l }
}

// OpenBook loads both stores from storage. Missing blobs are empty collections.
func OpenBook(storage Storage, opts ...Option) (*Book, error) {
	b := &Book{storage: storage, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}

	var products []Product
	if err := b.load(ProductsKey, &products); err != nil {
		return nil, err
	}
	var records []QueryRecord
	if err := b.load(RecordsKey, &records); err != nil {
		return nil, err
	}
	b.Products = NewProductStore(products, func(p []Product) error { return saveJSON(b, ProductsKey, p) })
	b.Records = NewRecordStore(records, func(r []QueryRecord) error { return saveJSON(b, RecordsKey, r) })

	for _, w := range b.Snapshot().Warnings() {
		b.log.Warn("data quality", zap.String("warning", w))
	}
	b.log.Debug("book opened", zap.Int("products", len(products)), zap.Int("records", len(records)))
	return b, nil
}

// load decodes the JSON array stored under key into v.
func (b *Book) load(key string, v any) error {
	data, err := b.storage.Load(key)
	if errors.Is(err, fs.ErrNotExist) {
		b.log.Debug("no saved data, starting empty", zap.String("key", key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot load %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cannot decode %q: %w", key, err)
	}
	return nil
}

// saveJSON encodes items as a JSON array and saves it under key.
func saveJSON[T any](b *Book, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := b.storage.Save(key, data); err != nil {
		return err
	}
	b.log.Debug("saved", zap.String("key", key), zap.Int("items", len(items)))
	return nil
}

// Snapshot returns the export snapshot of the book.
func (b *Book) Snapshot() Snapshot {
	return ExportSnapshot(b.Products.Products(), b.Records.Records())
}

// Export writes the book snapshot to w.
func (b *Book) Export(w io.Writer) error {
	return EncodeSnapshot(w, b.Snapshot())
}

// Import reads a snapshot from r and replaces both stores with it.
//
// Nothing changes if the snapshot cannot be read or is invalid. If the records
// cannot be saved, the products are restored to their previous state.
func (b *Book) Import(r io.Reader) (Snapshot, error) {
	s, err := DecodeSnapshot(r)
	if err != nil {
		return Snapshot{}, err
	}
	for _, w := range s.Warnings() {
		b.log.Warn("data quality", zap.String("warning", w))
	}

	previous := b.Products.Products()
	if err := b.Products.ReplaceAll(s.Products); err != nil {
		return Snapshot{}, err
	}
	if err := b.Records.ReplaceAll(s.Records); err != nil {
		if rerr := b.Products.ReplaceAll(previous); rerr != nil {
			b.log.Error("cannot restore products after a failed import", zap.Error(rerr))
		}
		return Snapshot{}, err
	}
	b.log.Info("imported", zap.Int("products", len(s.Products)), zap.Int("records", len(s.Records)))
	return s, nil
}

// DeleteProduct deletes a product and, if cascade is set, all its records.
// The product is restored if its records cannot be deleted.
func (b *Book) DeleteProduct(id string, cascade bool) error {
	previous := b.Products.Products()
	if err := b.Products.Delete(id); err != nil {
		return err
	}
	if !cascade {
		return nil
	}
	if err := b.Records.DeleteFor(id); err != nil {
		if rerr := b.Products.ReplaceAll(previous); rerr != nil {
			b.log.Error("cannot restore the product after a failed cascade", zap.String("id", id), zap.Error(rerr))
		}
		return err
	}
	return nil
}

// Query records a net value query for the product with the given id.
func (b *Book) Query(id string, on date.Date, currentNetValue float64) (QueryRecord, error) {
	p, ok := b.Products.Find(id)
	if !ok {
		return QueryRecord{}, fmt.Errorf("cannot query %q: %w", id, ErrNotFound)
	}
	return b.Records.AddFor(p, on, currentNetValue)
}
