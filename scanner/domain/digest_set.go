package domain

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/procwarden/procwarden/pkg/util"
)

const sha256HexLen = 64

// DigestSet is the set of known-malicious SHA-256 digests. It is immutable once built.
type DigestSet struct {
	digests     map[string]struct{}
	fingerprint string
}

// NormalizeDigest lower-cases a hex digest and checks that it is a SHA-256 digest.
func NormalizeDigest(s string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(s))
	if len(d) != sha256HexLen {
		return "", fmt.Errorf("digest %q: expected %d hex characters, got %d", s, sha256HexLen, len(d))
	}
	if _, err := hex.DecodeString(d); err != nil {
		return "", fmt.Errorf("digest %q: %w", s, err)
	}
	return d, nil
}

func NewDigestSet(digests []string) (DigestSet, error) {
	set := DigestSet{digests: make(map[string]struct{}, len(digests))}
	for _, raw := range digests {
		d, err := NormalizeDigest(raw)
		if err != nil {
			return DigestSet{}, err
		}
		set.digests[d] = struct{}{}
	}
	leaves := make([]string, 0, len(set.digests))
	for d := range set.digests {
		leaves = append(leaves, d)
	}
	set.fingerprint = util.MerkleRoot(leaves)
	return set, nil
}

// Contains reports membership, ignoring hex case.
func (s DigestSet) Contains(digest string) bool {
	if digest == "" {
		return false
	}
	_, ok := s.digests[strings.ToLower(digest)]
	return ok
}

func (s DigestSet) Len() int {
	return len(s.digests)
}

// Fingerprint is the merkle root over the sorted digests, letting operators compare the
// loaded set across hosts without shipping the list.
func (s DigestSet) Fingerprint() string {
	if s.fingerprint == "" {
		return util.EmptyRoot
	}
	return s.fingerprint
}

// ReadDigestList parses one digest per line. Blank lines and lines starting with '#' are
// skipped; anything else that is not a SHA-256 hex digest is an error.
func ReadDigestList(r io.Reader) ([]string, error) {
	digests := []string{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d, err := NormalizeDigest(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		digests = append(digests, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return digests, nil
}
