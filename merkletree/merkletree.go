package merkletree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pqledger/ledger-go/crypto"
	"github.com/pqledger/ledger-go/crypto/hasher"
	"github.com/pqledger/ledger-go/storage/kv"
	"go.uber.org/zap"
)

var (
	// ErrInvalidArgument indicates an empty name, key, data or hash.
	ErrInvalidArgument = errors.New("[merkletree] Invalid argument")
	// ErrInvalidNode indicates a leaf without a hash or an interior
	// node without children.
	ErrInvalidNode = errors.New("[merkletree] Invalid node")
	// ErrInvalidTree indicates that the linked nodes contradict the
	// shape the tree must have.
	ErrInvalidTree = errors.New("[merkletree] Invalid tree")
	// ErrCorruptNodeRecord indicates a stored node that can't be decoded.
	ErrCorruptNodeRecord = errors.New("[merkletree] Corrupt node record")
	// ErrCorruptMetadata indicates stored metadata that can't be decoded.
	ErrCorruptMetadata = errors.New("[merkletree] Corrupt metadata")
	// ErrDanglingNodeReference indicates a node which is referenced
	// but neither cached nor stored.
	ErrDanglingNodeReference = errors.New("[merkletree] Dangling node reference")
	// ErrLeafNotFound indicates that the leaf of an updated key is missing.
	ErrLeafNotFound = errors.New("[merkletree] Leaf not found")
	// ErrNoOpUpdate indicates an update to the same leaf hash.
	ErrNoOpUpdate = errors.New("[merkletree] Leaf hash unchanged")
	// ErrTreeClosed is returned by every operation on a closed tree.
	ErrTreeClosed = errors.New("[merkletree] Tree is closed")
)

// Tree is an incremental Merkle tree over a kv.DB.
//
// A Tree owns its kv.DB: all keys in it belong to the tree and the DB
// is closed by Close.
type Tree struct {
	mu     sync.Mutex
	name   string
	db     kv.DB
	hasher hasher.TreeHasher
	logger *zap.SugaredLogger

	// nodes holds every node touched since the last flush;
	// all of them are written by the next flush.
	nodes map[Hash]merkleNode
	// stored remembers the hash a node was loaded with from the db,
	// so that its old record can be removed once its hash changes.
	stored map[*node]Hash
	// data holds the pending data of every key written since the
	// last flush.
	data    map[string][]byte
	hanging map[uint32]Hash

	root      *Hash
	numLeaves uint32
	depth     uint32

	dirty  bool
	closed bool
}

// An Option configures a Tree in Open.
type Option func(*Tree)

// WithLogger sets the logger of the tree. By default nothing is logged.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// Open opens the tree called name, stored in db, and loads its metadata.
// The tree takes ownership of db once Open succeeds.
// Open fails with ErrTreeNameAlreadyOpen if a tree with the same name is
// open in this process, in which case db is left untouched.
// The hasher must produce 32-byte digests.
func Open(name string, db kv.DB, th hasher.TreeHasher, opts ...Option) (*Tree, error) {
	if name == "" || db == nil || th == nil {
		return nil, ErrInvalidArgument
	}
	if th.Size() != crypto.HashSizeByte {
		return nil, fmt.Errorf("%w: hasher %s has a %d-byte output",
			ErrInvalidArgument, th.ID(), th.Size())
	}
	if err := openTrees.reserve(name); err != nil {
		return nil, err
	}
	t := &Tree{
		name:   name,
		db:     db,
		hasher: th,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.resetCaches()
	if err := t.loadMetadata(); err != nil {
		openTrees.release(name)
		return nil, err
	}
	t.logger.Infow("Opened tree",
		"name", name,
		"hasher", th.ID(),
		"leaves", t.numLeaves,
		"depth", t.depth)
	return t, nil
}

// Name returns the name the tree was opened with.
func (t *Tree) Name() string {
	return t.name
}

// AddOrUpdateData sets the data of key. A new key adds a leaf to the
// tree; a known key with different data changes its leaf and every
// node up to the root. Setting the current data again is a no-op.
//
// If an error other than ErrInvalidArgument or ErrTreeClosed is
// returned, the in-memory state may be partially updated and should
// be dropped with RevertUnsavedChanges.
func (t *Tree) AddOrUpdateData(key, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTreeClosed
	}
	if len(key) == 0 || len(data) == 0 {
		return ErrInvalidArgument
	}

	old, found, err := t.getData(key)
	if err != nil {
		return err
	}
	newLeafHash := t.leafHash(key, data)
	var oldLeafHash Hash
	if found {
		oldLeafHash = t.leafHash(key, old)
		if oldLeafHash == newLeafHash {
			return nil
		}
	}

	t.data[string(key)] = append([]byte{}, data...)
	t.dirty = true

	if !found {
		leaf, err := newLeafNode(newLeafHash)
		if err != nil {
			return err
		}
		if err := t.addLeaf(leaf); err != nil {
			return err
		}
		leavesAdded.WithLabelValues(t.name).Inc()
		return nil
	}
	if err := t.updateLeaf(oldLeafHash, newLeafHash); err != nil {
		return err
	}
	leavesUpdated.WithLabelValues(t.name).Inc()
	return nil
}

// GetData returns the data of key, and whether key is in the tree.
func (t *Tree) GetData(key []byte) ([]byte, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, false, ErrTreeClosed
	}
	data, found, err := t.getData(key)
	if err != nil || !found {
		return nil, found, err
	}
	return append([]byte{}, data...), true, nil
}

// ContainsKey reports whether key is in the tree.
func (t *Tree) ContainsKey(key []byte) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false, ErrTreeClosed
	}
	_, found, err := t.getData(key)
	return found, err
}

// RootHash returns the hash of the root node, and false if the tree
// is empty.
func (t *Tree) RootHash() (Hash, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return Hash{}, false, ErrTreeClosed
	}
	if t.root == nil {
		return Hash{}, false, nil
	}
	return *t.root, true, nil
}

// NumLeaves returns the number of keys in the tree.
func (t *Tree) NumLeaves() (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrTreeClosed
	}
	return t.numLeaves, nil
}

// Depth returns the height of the tree: 0 for a single leaf,
// and the level of the root otherwise.
func (t *Tree) Depth() (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, ErrTreeClosed
	}
	return t.depth, nil
}

func (t *Tree) leafHash(key, data []byte) Hash {
	return toHash(t.hasher.HashLeaf(key, data))
}

func (t *Tree) getData(key []byte) ([]byte, bool, error) {
	if len(key) == 0 {
		return nil, false, ErrInvalidArgument
	}
	if data, ok := t.data[string(key)]; ok {
		return data, true, nil
	}
	data, err := t.db.Get(dataKey(key))
	if err == t.db.ErrNotFound() {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// loadNode returns the node with hash h from the cache, or from the
// db, in which case it is cached.
func (t *Tree) loadNode(h Hash) (merkleNode, error) {
	if n, ok := t.nodes[h]; ok {
		return n, nil
	}
	buf, err := t.db.Get(nodeKey(h))
	if err == t.db.ErrNotFound() {
		t.logger.Warnw("Missing node", "tree", t.name, "hash", h)
		return nil, fmt.Errorf("%w: %s", ErrDanglingNodeReference, h)
	} else if err != nil {
		return nil, err
	}
	n, err := deserializeNode(buf)
	if err != nil {
		return nil, err
	}
	if n.base().hash != h {
		return nil, fmt.Errorf("%w: record stored under %s has hash %s",
			ErrCorruptNodeRecord, h, n.base().hash)
	}
	t.nodes[h] = n
	t.stored[n.base()] = h
	return n, nil
}

func (t *Tree) resetCaches() {
	t.nodes = make(map[Hash]merkleNode)
	t.stored = make(map[*node]Hash)
	t.data = make(map[string][]byte)
}
