// Package storage implements [yieldbook.Storage] backends.
//
// A [Dir] keeps each blob in its own JSON file, and a [SQLite] keeps them as
// rows of a single table. Both report a blob that was never saved with an
// error matching fs.ErrNotExist.
package storage
