// Package pebblekv implements the kv interface using pebble.
package pebblekv

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pqledger/ledger-go/storage/kv"
)

type pebblekv struct {
	db *pebble.DB
}

var _ kv.DB = (*pebblekv)(nil)

// OpenDB opens (or creates) the pebble database at path.
func OpenDB(path string) (kv.DB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebblekv: cannot open %s: %w", path, err)
	}
	return Wrap(db), nil
}

// OpenMem opens a pebble database on an in-memory filesystem.
// Everything is lost once it is closed.
func OpenMem() (kv.DB, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, err
	}
	return Wrap(db), nil
}

// Wrap uses a pebble.DB as a kv.DB. All writes are synced.
func Wrap(db *pebble.DB) kv.DB {
	return &pebblekv{db: db}
}

func (p *pebblekv) Get(key []byte) ([]byte, error) {
	value, closer, err := p.db.Get(key)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	// the value is only valid until closer.Close
	return append([]byte{}, value...), nil
}

func (p *pebblekv) Put(key, value []byte) error {
	return p.db.Set(key, value, pebble.Sync)
}

func (p *pebblekv) Delete(key []byte) error {
	return p.db.Delete(key, pebble.Sync)
}

type batch struct {
	b *pebble.Batch
}

func (b *batch) Reset() {
	b.b.Reset()
}

func (b *batch) Put(key, value []byte) {
	// only fails for a committed or read-only batch
	_ = b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) {
	_ = b.b.Delete(key, nil)
}

func (p *pebblekv) NewBatch() kv.Batch {
	return &batch{b: p.db.NewBatch()}
}

func (p *pebblekv) Write(b kv.Batch) error {
	wb, ok := b.(*batch)
	if !ok {
		return fmt.Errorf("pebblekv.Write: expected *pebblekv.batch, got %T", b)
	}
	return p.db.Apply(wb.b, pebble.Sync)
}

type iterator struct {
	it  *pebble.Iterator
	err error
}

func (i *iterator) Key() []byte {
	if i.it == nil {
		return nil
	}
	return i.it.Key()
}

func (i *iterator) Value() []byte {
	if i.it == nil {
		return nil
	}
	return i.it.Value()
}

func (i *iterator) First() bool {
	return i.it != nil && i.it.First()
}

func (i *iterator) Next() bool {
	return i.it != nil && i.it.Next()
}

func (i *iterator) Last() bool {
	return i.it != nil && i.it.Last()
}

func (i *iterator) Release() {
	if i.it == nil {
		return
	}
	i.err = errors.Join(i.it.Error(), i.it.Close())
	i.it = nil
}

func (i *iterator) Error() error {
	if i.it != nil {
		return i.it.Error()
	}
	return i.err
}

func (p *pebblekv) NewIterator(rg *kv.Range) kv.Iterator {
	opts := &pebble.IterOptions{}
	if rg != nil {
		opts.LowerBound = rg.Start
		opts.UpperBound = rg.Limit
	}
	it, err := p.db.NewIter(opts)
	if err != nil {
		return &iterator{err: err}
	}
	return &iterator{it: it}
}

func (p *pebblekv) Close() error {
	return p.db.Close()
}

func (p *pebblekv) ErrNotFound() error {
	return pebble.ErrNotFound
}
