package util

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// EmptyRoot is the root of a tree without leaves: the SHA-256 of the empty input.
var EmptyRoot = HashSHA256Hex(nil)

func HashSHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// MerkleRoot returns the root hash over hex-encoded leaves. Leaves are sorted first so the
// result does not depend on configuration order. An odd node at any level is paired with
// itself.
func MerkleRoot(leaves []string) string {
	if len(leaves) == 0 {
		return EmptyRoot
	}
	level := make([]string, len(leaves))
	copy(level, leaves)
	sort.Strings(level)

	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashPair(left, right))
		}
		level = next
	}
	return level[0]
}

func hashPair(left, right string) string {
	l, errL := hex.DecodeString(left)
	r, errR := hex.DecodeString(right)
	if errL != nil || errR != nil {
		return HashSHA256Hex([]byte(left + right))
	}
	return HashSHA256Hex(append(l, r...))
}
