package hash

import (
	"hash"

	"golang.org/x/crypto/sha3"
)

// sha3_256Algo, embeds the stdlib hash state
type sha3_256Algo struct {
	hash.Hash
}

// NewSHA3_256 returns a new instance of SHA3-256 hasher
func NewSHA3_256() Hasher {
	return &sha3_256Algo{
		Hash: sha3.New256()}
}

func (s *sha3_256Algo) Algorithm() HashingAlgorithm {
	return SHA3_256
}

// ComputeHash calculates and returns the SHA3-256 output of input byte array.
// It does not reset the state to allow further writing.
func (s *sha3_256Algo) ComputeHash(data []byte) Hash {
	s.Reset()
	_, _ = s.Write(data)
	return s.Sum(nil)
}

// SumHash returns the SHA3-256 output.
// It does not reset the state to allow further writing.
func (s *sha3_256Algo) SumHash() Hash {
	return s.Sum(nil)
}
