package domain

import (
	"strings"
	"testing"

	"github.com/procwarden/procwarden/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	knownA = "fd0d8b9b2e3f3d0b2bbcb8db5e1b0f5c7cbf2f6a6d4f0b3c9a1e2d3c4b5a6978"
	knownB = "0000000000000000000000000000000000000000000000000000000000000001"
)

func TestNormalizeDigest(t *testing.T) {
	got, err := NormalizeDigest("  " + strings.ToUpper(knownA) + "\n")
	require.NoError(t, err)
	assert.Equal(t, knownA, got)

	_, err = NormalizeDigest("abc")
	assert.Error(t, err, "short digest should be rejected")

	_, err = NormalizeDigest(strings.Repeat("g", 64))
	assert.Error(t, err, "non-hex digest should be rejected")
}

func TestDigestSetContains(t *testing.T) {
	set, err := NewDigestSet([]string{strings.ToUpper(knownA), knownB, knownA})
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(knownA))
	assert.True(t, set.Contains(strings.ToUpper(knownB)))
	assert.False(t, set.Contains(""))
	assert.False(t, set.Contains(strings.Repeat("f", 64)))
}

func TestDigestSetFingerprintIgnoresOrder(t *testing.T) {
	s1, err := NewDigestSet([]string{knownA, knownB})
	require.NoError(t, err)
	s2, err := NewDigestSet([]string{knownB, knownA})
	require.NoError(t, err)
	assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	empty, err := NewDigestSet(nil)
	require.NoError(t, err)
	assert.Equal(t, util.EmptyRoot, empty.Fingerprint())
	assert.NotEqual(t, empty.Fingerprint(), s1.Fingerprint())
	assert.Equal(t, util.EmptyRoot, DigestSet{}.Fingerprint())
}

func TestReadDigestList(t *testing.T) {
	input := "# known bad builds\n\n" + knownA + "\n  " + strings.ToUpper(knownB) + "  \n"
	digests, err := ReadDigestList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{knownA, knownB}, digests)

	_, err = ReadDigestList(strings.NewReader(knownA + "\nnot-a-digest\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
