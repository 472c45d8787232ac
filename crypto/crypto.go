package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/sha3"
)

const (
	// HashSizeByte is the size of every digest a tree works with.
	HashSizeByte = 32
	// HashID identifies the hash used by Digest.
	HashID = "SHA3-256"
)

// Digest hashes all passed byte slices.
// The passed slices won't be mutated.
func Digest(ms ...[]byte) []byte {
	h := sha3.New256()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

// MakeRand returns a random slice of HashSizeByte bytes.
// The system's PRNG output is hashed before it is returned,
// so the raw bytes from rand.Read never leave this function.
// It is used to generate keys for keyed tree hashers.
func MakeRand() ([]byte, error) {
	r := make([]byte, HashSizeByte)
	if _, err := rand.Read(r); err != nil {
		return nil, err
	}
	return Digest(r), nil
}
