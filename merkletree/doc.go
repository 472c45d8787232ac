/*
Package merkletree implements an incremental, persistent Merkle tree which
maintains a verifiable mapping from keys to data.

Tree shape

Leaves are appended in insertion order and the tree is kept balanced
without ever being rebuilt. At every level below the current depth there
is at most one hanging node: a subtree root which has no sibling yet.
A node arriving at a level pairs up with the hanging node of that level
(the hanging node becomes the left child, the arriving node the right one),
and the resulting parent moves one level up where the same rule applies.
A node arriving at a level without a hanging node waits there, wrapped in
a parent with a single child. The shape of the tree therefore depends on
the insertion order: inserting the same keys in a different order
generally yields a different root hash.

A leaf hash is H(key || data). An interior node hash is H(left || right);
an interior node with a single child hashes that child against itself.
Nodes are identified by their hash and link to their parent and
children by hash only.

Updates

Changing the data of an existing key changes its leaf hash, which is
propagated up to the root, re-keying every node on the path.
Leaves can't be removed.

Persistence

All changes are kept in memory until FlushToDisk writes them to the
underlying kv.DB in a single atomic batch. RevertUnsavedChanges drops
them and goes back to the last flushed state. Only one Tree per name can
be open in a process at any time.

A Tree is safe for concurrent use; mutating calls are serialized.
*/
package merkletree
