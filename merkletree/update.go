package merkletree

import (
	"errors"
	"fmt"
)

// updateLeaf changes the hash of the leaf oldHash to newHash and
// propagates the change up to the root.
func (t *Tree) updateLeaf(oldHash, newHash Hash) error {
	if oldHash == newHash {
		return ErrNoOpUpdate
	}
	n, err := t.loadNode(oldHash)
	if errors.Is(err, ErrDanglingNodeReference) {
		return fmt.Errorf("%w: %s", ErrLeafNotFound, oldHash)
	} else if err != nil {
		return err
	}
	leaf, ok := n.(*leafNode)
	if !ok {
		return fmt.Errorf("%w: %s is an interior node", ErrLeafNotFound, oldHash)
	}
	return t.updateNodeHash(leaf, newHash)
}

// updateNodeHash re-keys n under newHash, fixes the links of its
// children and of the hanging node table, and recomputes every
// ancestor of n up to the root.
func (t *Tree) updateNodeHash(n merkleNode, newHash Hash) error {
	propagationSteps.WithLabelValues(t.name).Inc()
	b := n.base()
	oldHash := b.hash

	delete(t.nodes, oldHash)
	b.hash = newHash
	t.nodes[newHash] = n

	// A match is assumed to be this node, whatever the level: this
	// relies on the hash being collision resistant.
	for level, h := range t.hanging {
		if h == oldHash {
			t.hanging[level] = newHash
		}
	}

	switch n := n.(type) {
	case *interiorNode:
		for _, c := range n.children() {
			child, err := t.loadNode(c)
			if err != nil {
				return err
			}
			child.base().parent = hashPtr(newHash)
		}
	case *leafNode:
		// no children
	}

	if b.parent == nil {
		t.root = hashPtr(newHash)
		return nil
	}

	pn, err := t.loadNode(*b.parent)
	if err != nil {
		return err
	}
	parent, ok := pn.(*interiorNode)
	if !ok || !parent.replaceChild(oldHash, newHash) {
		return fmt.Errorf("%w: %s is not a parent of %s", ErrInvalidTree, *b.parent, oldHash)
	}
	return t.updateNodeHash(parent, parent.computeHash(t.hasher))
}
