package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/yieldbook"
	"github.com/etnz/yieldbook/date"
)

var (
	_ yieldbook.Storage = Dir("")
	_ yieldbook.Storage = (*SQLite)(nil)
)

// testStorage checks the behavior every backend shares.
func testStorage(t *testing.T, s yieldbook.Storage) {
	t.Helper()
	if _, err := s.Load("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}

	if err := s.Save("a", []byte(`[1]`)); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if err := s.Save("b", []byte(`[]`)); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if err := s.Save("a", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Save() overwrite unexpected error: %v", err)
	}

	for key, want := range map[string]string{"a": `[1,2]`, "b": `[]`} {
		got, err := s.Load(key)
		if err != nil {
			t.Fatalf("Load(%q) unexpected error: %v", key, err)
		}
		if string(got) != want {
			t.Errorf("Load(%q) = %s, want %s", key, got, want)
		}
	}
}

func TestDir(t *testing.T) {
	d, err := NewDir(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewDir() unexpected error: %v", err)
	}
	testStorage(t, d)

	entries, err := os.ReadDir(string(d))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "a.json" || names[1] != "b.json" {
		t.Errorf("directory content = %v, want [a.json b.json]", names)
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yieldbook.db")
	ctx := context.Background()
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() unexpected error: %v", err)
	}
	testStorage(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	// reopening applies no migration and keeps the data.
	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() again unexpected error: %v", err)
	}
	defer s.Close()
	if got, err := s.Load("a"); err != nil || string(got) != `[1,2]` {
		t.Errorf("Load(a) after reopening = %s, %v", got, err)
	}
}

func TestBookOnDir(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	b, err := yieldbook.OpenBook(d)
	if err != nil {
		t.Fatalf("OpenBook() unexpected error: %v", err)
	}
	data, err := yieldbook.NewProductData("Fund A", "", date.MustParse("2024-01-01"), 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	p, err := b.Products.Add(data)
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	reopened, err := yieldbook.OpenBook(d)
	if err != nil {
		t.Fatalf("OpenBook() unexpected error: %v", err)
	}
	if got, ok := reopened.Products.Find(p.ID); !ok || got.Name != "Fund A" {
		t.Errorf("reopened Find(%q) = %v, %v", p.ID, got, ok)
	}
	if _, err := os.Stat(filepath.Join(string(d), yieldbook.ProductsKey+".json")); err != nil {
		t.Errorf("products file: %v", err)
	}
}
