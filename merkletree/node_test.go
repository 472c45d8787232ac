package merkletree

import (
	"bytes"
	"errors"
	"testing"
)

func TestLeafNodeNeedsHash(t *testing.T) {
	if _, err := newLeafNode(Hash{}); !errors.Is(err, ErrInvalidNode) {
		t.Fatal("Expect ErrInvalidNode, got", err)
	}
	h := leafHashOf("k", "v")
	n, err := newLeafNode(h)
	if err != nil {
		t.Fatal(err)
	}
	if n.hash != h || n.parent != nil {
		t.Fatal("Unexpected leaf", n)
	}
}

func TestInteriorNodeNeedsChild(t *testing.T) {
	if _, err := newInteriorNode(testHasher, nil, nil); !errors.Is(err, ErrInvalidNode) {
		t.Fatal("Expect ErrInvalidNode, got", err)
	}
}

func TestLeafHash(t *testing.T) {
	for _, tc := range []struct {
		key, data, want string
	}{
		{"k", "v", "2e71036be50ae1c456374a2f5f2d8819ff9e0f48b9c51f273d3bbf4dfb605362"},
		{"k1", "v1", "0cdfee81c3cb432d5e1b803231db9e3998b885da0630afefd0583479c7b34e0f"},
		{"k2", "v2", "929b306b3a6fc969557dedea5aa303dca67a2e707362ea16f79748fc48eb5e18"},
	} {
		if got := leafHashOf(tc.key, tc.data); got != hashFromHex(t, tc.want) {
			t.Errorf("Leaf hash of (%q, %q) = %s, want %s", tc.key, tc.data, got, tc.want)
		}
	}
}

func TestSingleChildHash(t *testing.T) {
	a := hashFromHex(t, "2e71036be50ae1c456374a2f5f2d8819ff9e0f48b9c51f273d3bbf4dfb605362")
	want := hashFromHex(t, "1375ee20c2fdc97f36eb2372fb900773d9d295c3332c22c304186ad01a369a23")

	left, err := newInteriorNode(testHasher, &a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if left.hash != want {
		t.Fatalf("Got %s, want %s", left.hash, want)
	}
	right, err := newInteriorNode(testHasher, nil, &a)
	if err != nil {
		t.Fatal(err)
	}
	if right.hash != want {
		t.Fatalf("Got %s, want %s", right.hash, want)
	}
	if left.numChildren() != 1 || right.numChildren() != 1 {
		t.Fatal("Expect a single child")
	}
}

func TestTwoChildrenHash(t *testing.T) {
	l1, l2 := leafHashOf("k1", "v1"), leafHashOf("k2", "v2")
	n, err := newInteriorNode(testHasher, &l1, &l2)
	if err != nil {
		t.Fatal(err)
	}
	want := hashFromHex(t, "ee645e8aa6bb628c284bc33f0d637b56fb2e3eb040ebb5ca58c86a6a0978b93b")
	if n.hash != want {
		t.Fatalf("Got %s, want %s", n.hash, want)
	}
	swapped, err := newInteriorNode(testHasher, &l2, &l1)
	if err != nil {
		t.Fatal(err)
	}
	if swapped.hash == n.hash {
		t.Fatal("The order of the children must matter")
	}
}

func TestReplaceChild(t *testing.T) {
	l1, l2, l3 := leafHashOf("k1", "v1"), leafHashOf("k2", "v2"), leafHashOf("k3", "v3")
	n, err := newInteriorNode(testHasher, &l1, &l2)
	if err != nil {
		t.Fatal(err)
	}
	if !n.replaceChild(l2, l3) {
		t.Fatal("Cannot replace right child")
	}
	if *n.left != l1 || *n.right != l3 {
		t.Fatal("Unexpected children", n.children())
	}
	if n.replaceChild(l2, l1) {
		t.Fatal("Replaced a missing child")
	}
	if n.computeHash(testHasher) != interiorHashOf(l1, l3) {
		t.Fatal("Unexpected hash")
	}
}

func TestNodeRecordLayout(t *testing.T) {
	l1, l2, p := leafHashOf("k1", "v1"), leafHashOf("k2", "v2"), leafHashOf("p", "p")
	n, err := newInteriorNode(testHasher, &l1, &l2)
	if err != nil {
		t.Fatal(err)
	}
	n.parent = hashPtr(p)

	buf := serializeNode(n)
	if len(buf) != nodeHeaderSize+3*len(Hash{}) {
		t.Fatal("Unexpected record length", len(buf))
	}
	var want []byte
	want = append(want, n.hash[:]...)
	want = append(want, 1, 1, 1)
	want = append(want, l1[:]...)
	want = append(want, l2[:]...)
	want = append(want, p[:]...)
	if !bytes.Equal(buf, want) {
		t.Fatalf("Got %x, want %x", buf, want)
	}

	leaf, err := newLeafNode(l1)
	if err != nil {
		t.Fatal(err)
	}
	buf = serializeNode(leaf)
	if len(buf) != nodeHeaderSize || !bytes.Equal(buf[len(Hash{}):], []byte{0, 0, 0}) {
		t.Fatalf("Unexpected root leaf record %x", buf)
	}
}

func TestNodeRecordRoundTrip(t *testing.T) {
	l1, p := leafHashOf("k1", "v1"), leafHashOf("p", "p")

	leaf, err := newLeafNode(l1)
	if err != nil {
		t.Fatal(err)
	}
	leaf.parent = hashPtr(p)
	got, err := deserializeNode(serializeNode(leaf))
	if err != nil {
		t.Fatal(err)
	}
	gl, ok := got.(*leafNode)
	if !ok || gl.hash != l1 || gl.parent == nil || *gl.parent != p {
		t.Fatal("Unexpected leaf", got)
	}

	lone, err := newInteriorNode(testHasher, &l1, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err = deserializeNode(serializeNode(lone))
	if err != nil {
		t.Fatal(err)
	}
	gi, ok := got.(*interiorNode)
	if !ok || gi.hash != lone.hash || gi.parent != nil || gi.right != nil || *gi.left != l1 {
		t.Fatal("Unexpected interior node", got)
	}
}

func TestDecodeCorruptNodeRecord(t *testing.T) {
	l1 := leafHashOf("k1", "v1")
	lone, err := newInteriorNode(testHasher, &l1, nil)
	if err != nil {
		t.Fatal(err)
	}
	valid := serializeNode(lone)

	badFlag := append([]byte{}, valid...)
	badFlag[len(Hash{})] = 2
	missingLink := append([]byte{}, valid...)
	missingLink[len(Hash{})+1] = 1

	for name, buf := range map[string][]byte{
		"empty":     nil,
		"short":     valid[:nodeHeaderSize-1],
		"truncated": valid[:len(valid)-1],
		"trailing":  append(append([]byte{}, valid...), 0),
		"bad flag":  badFlag,
		"missing":   missingLink,
	} {
		if _, err := deserializeNode(buf); !errors.Is(err, ErrCorruptNodeRecord) {
			t.Errorf("%s: expect ErrCorruptNodeRecord, got %v", name, err)
		}
	}
}

func TestHangingKey(t *testing.T) {
	key := hangingKey(258)
	if !bytes.Equal(key, []byte{HangingKeyIdentifier, 2, 1, 0, 0}) {
		t.Fatalf("Unexpected key %x", key)
	}
	level, err := hangingLevel(key)
	if err != nil || level != 258 {
		t.Fatal("Unexpected level", level, err)
	}
	if _, err := hangingLevel(key[:3]); !errors.Is(err, ErrCorruptMetadata) {
		t.Fatal("Expect ErrCorruptMetadata, got", err)
	}
}
