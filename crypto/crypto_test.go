package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
)

type testErrorRandReader struct{}

func (er testErrorRandReader) Read([]byte) (int, error) {
	return 0, errors.New("not enough entropy")
}

func TestMakeRand(t *testing.T) {
	r, err := MakeRand()
	if err != nil {
		t.Fatal(err)
	}
	// check if hashed the random output:
	if len(r) != HashSizeByte {
		t.Fatal("Looks like Digest wasn't called correctly.")
	}
	orig := rand.Reader
	rand.Reader = testErrorRandReader{}
	defer func() { rand.Reader = orig }()
	if _, err = MakeRand(); err == nil {
		t.Fatal("No error returned")
	}
}

func TestDigest(t *testing.T) {
	// SHA3-256("abc")
	want, _ := hex.DecodeString("3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532")
	if got := Digest([]byte("abc")); !bytes.Equal(got, want) {
		t.Fatalf("Unexpected digest: want %x, got %x", want, got)
	}
	if got := Digest([]byte("a"), []byte("bc")); !bytes.Equal(got, want) {
		t.Fatal("Digest must hash the concatenation of its inputs")
	}
}
