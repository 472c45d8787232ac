package merkletree

import (
	"encoding/hex"

	"github.com/pqledger/ledger-go/crypto"
	"github.com/pqledger/ledger-go/crypto/hasher"
)

// Hash is the identity of a tree node.
type Hash [crypto.HashSizeByte]byte

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero (empty) hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func toHash(b []byte) Hash {
	var h Hash
	copy(h[:], b)
	return h
}

func hashPtr(h Hash) *Hash {
	return &h
}

type node struct {
	hash   Hash
	parent *Hash // nil for the root
}

type leafNode struct {
	node
}

// An interiorNode has at least one child. A single child is always
// kept in left.
type interiorNode struct {
	node
	left  *Hash
	right *Hash
}

type merkleNode interface {
	base() *node
}

var _ merkleNode = (*leafNode)(nil)
var _ merkleNode = (*interiorNode)(nil)

func (n *node) base() *node {
	return n
}

func newLeafNode(h Hash) (*leafNode, error) {
	if h.IsZero() {
		return nil, ErrInvalidNode
	}
	return &leafNode{node: node{hash: h}}, nil
}

func newInteriorNode(th hasher.TreeHasher, left, right *Hash) (*interiorNode, error) {
	if left == nil && right == nil {
		return nil, ErrInvalidNode
	}
	n := &interiorNode{}
	if left != nil {
		n.left = hashPtr(*left)
	}
	if right != nil {
		n.right = hashPtr(*right)
	}
	n.hash = n.computeHash(th)
	return n, nil
}

// computeHash returns H(L || R) over the current children, where a
// missing child is replaced by its sibling.
func (n *interiorNode) computeHash(th hasher.TreeHasher) Hash {
	l, r := n.left, n.right
	if l == nil {
		l = r
	}
	if r == nil {
		r = l
	}
	return toHash(th.HashInterior(l[:], r[:]))
}

func (n *interiorNode) children() []Hash {
	var cs []Hash
	if n.left != nil {
		cs = append(cs, *n.left)
	}
	if n.right != nil {
		cs = append(cs, *n.right)
	}
	return cs
}

func (n *interiorNode) numChildren() int {
	return len(n.children())
}

// replaceChild swaps the child link old for new and reports whether
// n had such a child.
func (n *interiorNode) replaceChild(old, new Hash) bool {
	switch {
	case n.left != nil && *n.left == old:
		n.left = hashPtr(new)
	case n.right != nil && *n.right == old:
		n.right = hashPtr(new)
	default:
		return false
	}
	return true
}
