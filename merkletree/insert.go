package merkletree

import "fmt"

// addLeaf inserts a new leaf at level 0 and counts it.
func (t *Tree) addLeaf(leaf *leafNode) error {
	if err := t.addNode(0, leaf); err != nil {
		return err
	}
	t.numLeaves++
	return nil
}

// addNode places n, a node without parent, at level.
//
// If level has a hanging node, n becomes its right sibling: either a new
// parent is created for both (the hanging node was the root) and placed
// one level up, or n takes the free slot of the hanging node's parent.
// Otherwise n hangs at level, and becomes the root if level is at or
// above the depth of the tree, or is wrapped in a single-child parent
// which is placed one level up.
func (t *Tree) addNode(level uint32, n merkleNode) error {
	b := n.base()
	t.nodes[b.hash] = n

	hangingHash, ok := t.hanging[level]
	if !ok {
		t.hanging[level] = b.hash
		if level >= t.depth {
			b.parent = nil
			t.root = hashPtr(b.hash)
			t.depth = level
			return nil
		}
		parent, err := newInteriorNode(t.hasher, &b.hash, nil)
		if err != nil {
			return err
		}
		b.parent = hashPtr(parent.hash)
		return t.addNode(level+1, parent)
	}

	sibling, err := t.loadNode(hangingHash)
	if err != nil {
		return err
	}
	sb := sibling.base()
	if sb.parent == nil {
		// the hanging node is the root, grow the tree by one level
		parent, err := newInteriorNode(t.hasher, &sb.hash, &b.hash)
		if err != nil {
			return err
		}
		sb.parent = hashPtr(parent.hash)
		b.parent = hashPtr(parent.hash)
		delete(t.hanging, level)
		return t.addNode(level+1, parent)
	}

	pn, err := t.loadNode(*sb.parent)
	if err != nil {
		return err
	}
	parent, ok := pn.(*interiorNode)
	if !ok || parent.numChildren() != 1 {
		return fmt.Errorf("%w: parent %s of hanging node %s at level %d can't take another child",
			ErrInvalidTree, *sb.parent, sb.hash, level)
	}
	if parent.left == nil {
		parent.left = hashPtr(b.hash)
	} else {
		parent.right = hashPtr(b.hash)
	}
	b.parent = hashPtr(parent.hash)
	delete(t.hanging, level)
	return t.updateNodeHash(parent, parent.computeHash(t.hasher))
}
