package sha3hasher

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/pqledger/ledger-go/crypto/hasher"
)

func TestRegistered(t *testing.T) {
	h, err := hasher.Hasher(SHA3Hasher)
	if err != nil {
		t.Fatal(err)
	}
	if h.ID() != SHA3Hasher || h.Size() != 32 {
		t.Fatal("Unexpected hasher", h.ID(), h.Size())
	}
}

func TestHashLeaf(t *testing.T) {
	// SHA3-256("abc")
	want, _ := hex.DecodeString("3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532")
	h := New()
	if got := h.HashLeaf([]byte("a"), []byte("bc")); !bytes.Equal(got, want) {
		t.Fatalf("Unexpected leaf hash: want %x, got %x", want, got)
	}
	if got := h.HashInterior([]byte("ab"), []byte("c")); !bytes.Equal(got, want) {
		t.Fatalf("Unexpected interior hash: want %x, got %x", want, got)
	}
}
