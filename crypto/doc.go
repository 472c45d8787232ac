// Package crypto contains the cryptographic routines shared by the
// tree implementations:
// - hash arbitrary data (`Digest`) using SHA3-256
// - generate a random slice of bytes, e.g. a key for a keyed hasher.
//
// The hash functions used to build trees live in the hasher
// subpackage and its implementations.
package crypto
