package lightclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashBytesGenesisHeader(t *testing.T) {
	headers := mainnetHeaders(t)
	raw := headers[0].Serialize()

	hash := HashBytes(raw[:])
	require.Equal(t, mainnetHash(t, 0), hash)
	require.Equal(t, mainnetHashHex[0], hash.String()[2:])
}

func TestHeaderHashChain(t *testing.T) {
	headers := mainnetHeaders(t)
	for i, h := range headers {
		require.Equal(t, mainnetHash(t, i), HeaderHash(&h), "hash mismatch at height %d", i)
	}
	// every header commits to its predecessor's hash
	for i := 1; i < len(headers); i++ {
		require.Equal(t, mainnetHash(t, i-1), headers[i].PrevBlock)
	}
}

func TestHasherChunkIndependence(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	whole := HashBytes(data)

	chunked := NewHasher()
	chunked.Write(data[:7])
	chunked.Write(data[7:7])
	chunked.Write(data[7:])
	require.Equal(t, whole, chunked.Sum())
}

func TestHashPairMatchesConcatenation(t *testing.T) {
	left := HashBytes([]byte("left"))
	right := HashBytes([]byte("right"))

	var concat [64]byte
	copy(concat[:32], left[:])
	copy(concat[32:], right[:])

	require.Equal(t, HashBytes(concat[:]), HashPair(left, right))
	require.NotEqual(t, HashPair(left, right), HashPair(right, left))
}
