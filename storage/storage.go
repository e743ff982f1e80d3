// Package storage keeps a local catalog of embed receipts: which cover file
// was encoded into which output, when, and how much it carried. The engine
// never touches it; the CLI uses it for ls/rm bookkeeping.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/i5heu/ouroboros-stego/pkg/spaceinfo"
)

// ReceiptPrefix namespaces receipt records in BadgerDB.
const ReceiptPrefix = "receipt:"

// Receipt records one completed encode operation.
type Receipt struct {
	ID              string `json:"id"`
	CoverFile       string `json:"cover_file"`
	StegoFile       string `json:"stego_file"`
	SampleRate      int    `json:"sample_rate"`
	Channels        int    `json:"channels"`
	SampleCount     int    `json:"sample_count"`
	MessageBytes    int    `json:"message_bytes"`
	CiphertextBytes int    `json:"ciphertext_bytes"`
	CreatedUnix     int64  `json:"created_unix"`
}

// Catalog is a BadgerDB-backed receipt store.
type Catalog struct {
	db *badger.DB
}

// Open opens (or creates) the catalog at dir after checking the filesystem
// has at least minFreeGB gigabytes available.
func Open(dir string, minFreeGB float64) (*Catalog, error) {
	if err := spaceinfo.EnsureFreeSpace(dir, minFreeGB); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ValueLogFileSize = 1024 * 1024 * 100 // Set max size of each value log file to 100MB
	opts.SyncWrites = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog at %s: %w", dir, err)
	}

	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// NewReceiptID returns a fresh random receipt identifier.
func NewReceiptID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate receipt ID: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Put stores a receipt, assigning an ID when the caller left it empty.
func (c *Catalog) Put(r Receipt) (Receipt, error) {
	if r.ID == "" {
		id, err := NewReceiptID()
		if err != nil {
			return Receipt{}, err
		}
		r.ID = id
	}

	data, err := json.Marshal(r)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to marshal receipt: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(ReceiptPrefix+r.ID), data)
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to store receipt: %w", err)
	}
	return r, nil
}

// Get retrieves a receipt by ID.
func (c *Catalog) Get(id string) (Receipt, error) {
	var r Receipt
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ReceiptPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to read receipt %s: %w", id, err)
	}
	return r, nil
}

// List returns every stored receipt, newest first.
func (c *Catalog) List() ([]Receipt, error) {
	var receipts []Receipt

	err := c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(ReceiptPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r Receipt
				if err := json.Unmarshal(val, &r); err != nil {
					return fmt.Errorf("failed to unmarshal receipt: %w", err)
				}
				receipts = append(receipts, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].CreatedUnix > receipts[j].CreatedUnix
	})
	return receipts, nil
}

// Delete removes a receipt by ID. Deleting a missing receipt is an error.
func (c *Catalog) Delete(id string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		key := []byte(ReceiptPrefix + id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("failed to delete receipt %s: %w", id, err)
	}
	return nil
}
