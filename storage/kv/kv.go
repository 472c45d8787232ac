// Copyright 2014-2015 The Coname Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
// 	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package kv contains a generic interface for key-value databases with support
// for batch writes. All operations are safe for concurrent use, atomic and
// synchronously persistent.
package kv

// DB is an abstract ordered key-value store. All operations are assumed to be
// synchronous, atomic and linearizable. This includes the following guarantee:
// After Put(k, v) has returned, and as long as no other Put(k, ?) has been
// called happened, Get(k) MUST return always v, regardless of whether the
// process or the entire system has been reset in the meantime or very little
// time has passed. To amortize the overhead of synchronous writes, DB offers
// batch operations: Write(...) performs a series of Put-s and Delete-s
// atomically, either all of them are applied or none is.
type DB interface {
	// Get returns the value stored under key, or ErrNotFound() if
	// there is none.
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	NewBatch() Batch
	Write(Batch) error
	// NewIterator returns an iterator over the keys in rg, or over
	// all keys if rg is nil.
	NewIterator(rg *Range) Iterator
	Close() error

	ErrNotFound() error
}

// A Batch contains a sequence of Put-s and Delete-s waiting to be
// Write-n to a DB. A Batch is only valid for the DB that created it.
type Batch interface {
	Reset()
	Put(key, value []byte)
	Delete(key []byte)
}

// Iterator is an abstract pointer to a DB entry. It must be valid to call
// Error() after release. The boolean return values indicate whether the
// requested entry exists. The slices returned by Key() and Value() are
// only valid until the next call that moves the iterator.
type Iterator interface {
	Key() []byte
	Value() []byte
	First() bool
	Next() bool
	Last() bool
	Release()
	Error() error
}

// A Range selects the keys k with Start <= k < Limit. A nil Limit
// selects every key from Start on.
type Range struct {
	Start []byte
	Limit []byte
}

// Prefix returns the Range of the keys starting with prefix.
func Prefix(prefix []byte) *Range {
	return &Range{Start: prefix, Limit: prefixEnd(prefix)}
}

// prefixEnd returns the smallest key greater than every key starting
// with prefix, or nil if there is none, as for a prefix of 0xff bytes.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for len(end) > 0 {
		last := len(end) - 1
		if end[last] != 0xff {
			end[last]++
			return end
		}
		end = end[:last]
	}
	return nil
}

// Keys returns a copy of every key starting with prefix, in order.
// An empty prefix returns every key of db.
func Keys(db DB, prefix []byte) ([][]byte, error) {
	var rg *Range
	if len(prefix) > 0 {
		rg = Prefix(prefix)
	}
	iter := db.NewIterator(rg)
	defer iter.Release()
	var keys [][]byte
	for ok := iter.First(); ok; ok = iter.Next() {
		keys = append(keys, append([]byte{}, iter.Key()...))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return keys, nil
}
