package merkletree

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pqledger/ledger-go/crypto"
	"github.com/pqledger/ledger-go/storage/kv"
	"github.com/pqledger/ledger-go/utils"
)

// loadMetadata reads the root hash, leaf count, depth and the hanging
// node table from the db. The tree is only changed if all of them can
// be read.
func (t *Tree) loadMetadata() error {
	var root *Hash
	var numLeaves, depth uint32
	hanging := make(map[uint32]Hash)

	val, err := t.db.Get(rootHashKey)
	switch {
	case err == t.db.ErrNotFound():
	case err != nil:
		return err
	case len(val) != crypto.HashSizeByte:
		return fmt.Errorf("%w: root hash of %d bytes", ErrCorruptMetadata, len(val))
	default:
		root = hashPtr(toHash(val))
	}

	for _, m := range []struct {
		key []byte
		val *uint32
	}{
		{numLeavesKey, &numLeaves},
		{depthKey, &depth},
	} {
		val, err := t.db.Get(m.key)
		if err == t.db.ErrNotFound() {
			continue
		} else if err != nil {
			return err
		}
		if len(val) != 4 {
			return fmt.Errorf("%w: %q holds %d bytes", ErrCorruptMetadata, m.key, len(val))
		}
		*m.val = binary.LittleEndian.Uint32(val)
	}

	iter := t.db.NewIterator(kv.Prefix([]byte{HangingKeyIdentifier}))
	defer iter.Release()
	for ok := iter.First(); ok; ok = iter.Next() {
		level, err := hangingLevel(iter.Key())
		if err != nil {
			return err
		}
		if len(iter.Value()) != crypto.HashSizeByte {
			return fmt.Errorf("%w: hanging node at level %d", ErrCorruptMetadata, level)
		}
		hanging[level] = toHash(iter.Value())
	}
	if err := iter.Error(); err != nil {
		return err
	}

	t.root = root
	t.numLeaves = numLeaves
	t.depth = depth
	t.hanging = hanging
	return nil
}

// FlushToDisk writes every pending change to the db in a single
// atomic batch. If the write fails, nothing changes in memory and
// the error of the db is returned.
func (t *Tree) FlushToDisk() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTreeClosed
	}
	return t.flush()
}

func (t *Tree) flush() error {
	if !t.dirty {
		return nil
	}
	start := time.Now()
	wb := t.db.NewBatch()
	records := 0

	if t.root != nil {
		wb.Put(rootHashKey, t.root[:])
	} else {
		wb.Delete(rootHashKey)
	}
	wb.Put(numLeavesKey, utils.UInt32ToBytes(t.numLeaves))
	wb.Put(depthKey, utils.UInt32ToBytes(t.depth))

	maxLevel := t.depth
	for level := range t.hanging {
		if level > maxLevel {
			maxLevel = level
		}
	}
	for level := uint32(0); level <= maxLevel; level++ {
		if h, ok := t.hanging[level]; ok {
			wb.Put(hangingKey(level), h[:])
		} else {
			wb.Delete(hangingKey(level))
		}
	}

	// stale records of renamed nodes, unless the hash is in use again
	for b, old := range t.stored {
		if _, live := t.nodes[old]; b.hash != old && !live {
			wb.Delete(nodeKey(old))
		}
	}
	for h, n := range t.nodes {
		wb.Put(nodeKey(h), serializeNode(n))
		records++
	}
	for k, v := range t.data {
		wb.Put(dataKey([]byte(k)), v)
		records++
	}

	if err := t.db.Write(wb); err != nil {
		t.logger.Errorw("Cannot flush tree", "tree", t.name, "error", err)
		return fmt.Errorf("merkletree: flush %s: %w", t.name, err)
	}

	t.resetCaches()
	t.dirty = false
	flushes.WithLabelValues(t.name).Inc()
	flushedRecords.WithLabelValues(t.name).Add(float64(records))
	flushDuration.WithLabelValues(t.name).Observe(time.Since(start).Seconds())
	t.logger.Debugw("Flushed tree",
		"tree", t.name,
		"records", records,
		"leaves", t.numLeaves,
		"depth", t.depth)
	return nil
}

// RevertUnsavedChanges drops every change since the last flush and
// reloads the state of the tree from the db. If the stored state can't
// be read, the unsaved changes are kept and the error is returned.
func (t *Tree) RevertUnsavedChanges() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTreeClosed
	}
	if !t.dirty {
		return nil
	}
	if err := t.loadMetadata(); err != nil {
		return err
	}
	t.resetCaches()
	t.dirty = false
	t.logger.Debugw("Reverted tree", "tree", t.name, "leaves", t.numLeaves)
	return nil
}

// Clear removes every key of the tree from the db in a single batch,
// and empties the tree. If the write fails, nothing changes in memory.
func (t *Tree) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTreeClosed
	}
	keys, err := kv.Keys(t.db, nil)
	if err != nil {
		return err
	}
	wb := t.db.NewBatch()
	for _, key := range keys {
		wb.Delete(key)
	}
	if err := t.db.Write(wb); err != nil {
		return fmt.Errorf("merkletree: clear %s: %w", t.name, err)
	}

	t.resetCaches()
	t.hanging = make(map[uint32]Hash)
	t.root = nil
	t.numLeaves = 0
	t.depth = 0
	t.dirty = false
	t.logger.Debugw("Cleared tree", "tree", t.name, "keys", len(keys))
	return nil
}

// Close flushes the pending changes, closes the db and releases the
// name of the tree. If the flush fails, the tree stays open.
func (t *Tree) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTreeClosed
	}
	if err := t.flush(); err != nil {
		return err
	}
	t.closed = true
	err := t.db.Close()
	// the db must be closed before another Open of the name can start
	openTrees.release(t.name)
	t.logger.Infow("Closed tree", "name", t.name)
	return err
}
