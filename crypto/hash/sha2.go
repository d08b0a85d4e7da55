package hash

import (
	"crypto/sha256"
	"hash"
)

// sha2_256Algo, embeds the stdlib hash state
type sha2_256Algo struct {
	hash.Hash
}

// NewSHA2_256 returns a new instance of SHA2-256 hasher
func NewSHA2_256() Hasher {
	return &sha2_256Algo{
		Hash: sha256.New()}
}

func (s *sha2_256Algo) Algorithm() HashingAlgorithm {
	return SHA2_256
}

// ComputeHash calculates and returns the SHA2-256 output of input byte array.
// It does not reset the state to allow further writing.
func (s *sha2_256Algo) ComputeHash(data []byte) Hash {
	s.Reset()
	_, _ = s.Write(data)
	return s.Sum(nil)
}

// SumHash returns the SHA2-256 output.
// It does not reset the state to allow further writing.
func (s *sha2_256Algo) SumHash() Hash {
	return s.Sum(nil)
}
