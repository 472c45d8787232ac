// Package kvtest contains helpers to test kv.DB implementations and
// the code built on top of them.
package kvtest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pqledger/ledger-go/storage/kv"
)

// Exercise runs the behaviour every kv.DB implementation must provide
// against the empty database db. It leaves db open.
func Exercise(t *testing.T, db kv.DB) {
	t.Helper()

	if _, err := db.Get([]byte("missing")); err != db.ErrNotFound() {
		t.Fatalf("Get of a missing key: want %v, got %v", db.ErrNotFound(), err)
	}

	if err := db.Put([]byte("a"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	got, err := db.Get([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("1")) {
		t.Fatalf("Get: want %q, got %q", "1", got)
	}

	wb := db.NewBatch()
	wb.Put([]byte("b"), []byte("2"))
	wb.Put([]byte("c"), []byte("3"))
	wb.Put([]byte("d"), []byte("4"))
	wb.Delete([]byte("a"))
	if err := db.Write(wb); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get([]byte("a")); err != db.ErrNotFound() {
		t.Fatal("Batch delete was not applied")
	}

	keys, err := kv.Keys(db, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertKeys(t, keys, "b", "c", "d")

	keys, err = kv.Keys(db, []byte("c"))
	if err != nil {
		t.Fatal(err)
	}
	assertKeys(t, keys, "c")

	rangeIter := db.NewIterator(&kv.Range{Start: []byte("b"), Limit: []byte("d")})
	keys = nil
	for ok := rangeIter.First(); ok; ok = rangeIter.Next() {
		keys = append(keys, append([]byte{}, rangeIter.Key()...))
	}
	rangeIter.Release()
	if err := rangeIter.Error(); err != nil {
		t.Fatal(err)
	}
	assertKeys(t, keys, "b", "c")

	// iterators are restartable
	iter := db.NewIterator(nil)
	n := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		n++
	}
	if !iter.Last() || !bytes.Equal(iter.Key(), []byte("d")) {
		t.Error("Last() should move to the last key")
	}
	m := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		m++
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		t.Fatal(err)
	}
	if n != 3 || m != 3 {
		t.Fatalf("Expect 3 keys on both passes, got %d and %d", n, m)
	}

	wb.Reset()
	wb.Put([]byte("e"), []byte("5"))
	if err := db.Write(wb); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get([]byte("b")); err != nil {
		t.Fatal("A reset batch must not replay its previous content", err)
	}

	if err := db.Delete([]byte("e")); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get([]byte("e")); err != db.ErrNotFound() {
		t.Fatal("Delete was not applied")
	}
}

func assertKeys(t *testing.T, keys [][]byte, want ...string) {
	t.Helper()
	if len(keys) != len(want) {
		t.Fatalf("want keys %v, got %q", want, keys)
	}
	for i := range want {
		if string(keys[i]) != want[i] {
			t.Fatalf("want keys %v, got %q", want, keys)
		}
	}
}

// ErrInjected is returned by a FailingDB whose writes are failing.
var ErrInjected = errors.New("[kvtest] injected write failure")

// FailingDB wraps a kv.DB and fails every write while FailWrites is set.
// Reads always go through to the wrapped DB.
type FailingDB struct {
	kv.DB
	FailWrites bool
	Closed     bool
}

func (db *FailingDB) Put(key, value []byte) error {
	if db.FailWrites {
		return ErrInjected
	}
	return db.DB.Put(key, value)
}

func (db *FailingDB) Delete(key []byte) error {
	if db.FailWrites {
		return ErrInjected
	}
	return db.DB.Delete(key)
}

func (db *FailingDB) Write(b kv.Batch) error {
	if db.FailWrites {
		return ErrInjected
	}
	return db.DB.Write(b)
}

func (db *FailingDB) Close() error {
	db.Closed = true
	return db.DB.Close()
}
