package merkletree

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/pqledger/ledger-go/crypto/hasher/sha3hasher"
	"github.com/pqledger/ledger-go/storage/kv"
	"github.com/pqledger/ledger-go/storage/kv/kvtest"
	"github.com/pqledger/ledger-go/storage/kv/leveldbkv"
)

var testHasher = sha3hasher.New()

// newTestTree opens a tree named after the test over an in-memory db.
// The tree is closed when the test ends.
func newTestTree(t *testing.T) (*Tree, *kvtest.FailingDB) {
	t.Helper()
	mem, err := leveldbkv.OpenMem()
	if err != nil {
		t.Fatal(err)
	}
	db := &kvtest.FailingDB{DB: mem}
	return openTestTree(t, t.Name(), db), db
}

func openTestTree(t *testing.T, name string, db kv.DB) *Tree {
	t.Helper()
	tr, err := Open(name, db, testHasher)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if fdb, ok := db.(*kvtest.FailingDB); ok {
			fdb.FailWrites = false
		}
		if err := tr.Close(); err != nil && !errors.Is(err, ErrTreeClosed) {
			t.Error(err)
		}
	})
	return tr
}

func leafHashOf(key, data string) Hash {
	return toHash(testHasher.HashLeaf([]byte(key), []byte(data)))
}

func interiorHashOf(left, right Hash) Hash {
	return toHash(testHasher.HashInterior(left[:], right[:]))
}

func hashFromHex(t *testing.T, s string) Hash {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(Hash{}) {
		t.Fatalf("Bad hash %q", s)
	}
	return toHash(b)
}

func mustAdd(t *testing.T, tr *Tree, key, data string) {
	t.Helper()
	if err := tr.AddOrUpdateData([]byte(key), []byte(data)); err != nil {
		t.Fatalf("AddOrUpdateData(%q, %q): %v", key, data, err)
	}
}

func mustFlush(t *testing.T, tr *Tree) {
	t.Helper()
	if err := tr.FlushToDisk(); err != nil {
		t.Fatal(err)
	}
}

type treeState struct {
	root      Hash
	hasRoot   bool
	numLeaves uint32
	depth     uint32
}

func stateOf(t *testing.T, tr *Tree) treeState {
	t.Helper()
	var s treeState
	var err error
	if s.root, s.hasRoot, err = tr.RootHash(); err != nil {
		t.Fatal(err)
	}
	if s.numLeaves, err = tr.NumLeaves(); err != nil {
		t.Fatal(err)
	}
	if s.depth, err = tr.Depth(); err != nil {
		t.Fatal(err)
	}
	return s
}

func assertState(t *testing.T, tr *Tree, root Hash, numLeaves, depth uint32) {
	t.Helper()
	want := treeState{root: root, hasRoot: true, numLeaves: numLeaves, depth: depth}
	if got := stateOf(t, tr); got != want {
		t.Fatalf("Unexpected tree state:\nwant root %s, %d leaves, depth %d\ngot  root %s, %d leaves, depth %d",
			want.root, want.numLeaves, want.depth, got.root, got.numLeaves, got.depth)
	}
}

// checkTree walks the whole tree and verifies every hash, every link,
// the leaf count and the hanging node table. It returns the number of
// nodes in the tree.
func checkTree(t *testing.T, tr *Tree) int {
	t.Helper()
	if tr.root == nil {
		if tr.numLeaves != 0 || len(tr.hanging) != 0 {
			t.Fatal("An empty tree must have no leaves and no hanging nodes")
		}
		return 0
	}

	leaves, nodes := uint32(0), 0
	var walk func(h Hash, parent *Hash, level uint32)
	walk = func(h Hash, parent *Hash, level uint32) {
		n, err := tr.loadNode(h)
		if err != nil {
			t.Fatal(err)
		}
		nodes++
		b := n.base()
		if (parent == nil) != (b.parent == nil) || (parent != nil && *parent != *b.parent) {
			t.Fatalf("Node %s has a wrong parent link", h)
		}
		switch n := n.(type) {
		case *leafNode:
			if level != 0 {
				t.Fatalf("Leaf %s at level %d", h, level)
			}
			leaves++
		case *interiorNode:
			if level == 0 {
				t.Fatalf("Interior node %s at level 0", h)
			}
			if n.left == nil {
				t.Fatalf("Interior node %s without left child", h)
			}
			if n.computeHash(tr.hasher) != h {
				t.Fatalf("Interior node %s has a stale hash", h)
			}
			for _, c := range n.children() {
				walk(c, &h, level-1)
			}
		}
	}
	walk(*tr.root, nil, tr.depth)

	if leaves != tr.numLeaves {
		t.Fatalf("Found %d leaves, the tree counts %d", leaves, tr.numLeaves)
	}
	if tr.hanging[tr.depth] != *tr.root {
		t.Fatal("The root must hang at the top level")
	}
	for level, h := range tr.hanging {
		if level == tr.depth {
			continue
		}
		n, err := tr.loadNode(h)
		if err != nil {
			t.Fatal(err)
		}
		if n.base().parent == nil {
			t.Fatalf("Hanging node %s at level %d has no parent", h, level)
		}
		p, err := tr.loadNode(*n.base().parent)
		if err != nil {
			t.Fatal(err)
		}
		if p.(*interiorNode).numChildren() != 1 {
			t.Fatalf("Hanging node %s at level %d has a sibling", h, level)
		}
	}
	return nodes
}

// countRecords returns the number of keys in db starting with prefix.
func countRecords(t *testing.T, db kv.DB, prefix byte) int {
	t.Helper()
	keys, err := kv.Keys(db, []byte{prefix})
	if err != nil {
		t.Fatal(err)
	}
	return len(keys)
}
