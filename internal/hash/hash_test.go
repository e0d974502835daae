package hash

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXXH3_128IsDeterministic(t *testing.T) {
	content := []byte("the quick brown fox jumps over the lazy dog")

	a, err := XXH3_128(bytes.NewReader(content))
	require.NoError(t, err)

	b, err := XXH3_128(bytes.NewReader(content))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestXXH3_128DiffersForDifferentContent(t *testing.T) {
	a, err := XXH3_128(strings.NewReader("content-a"))
	require.NoError(t, err)

	b, err := XXH3_128(strings.NewReader("content-b"))
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}

func TestSum128TextRoundTrip(t *testing.T) {
	sum, err := XXH3_128(strings.NewReader("round trip me"))
	require.NoError(t, err)

	text, err := sum.MarshalText()
	require.NoError(t, err)

	var decoded Sum128
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, sum.Equal(decoded))
}

func TestSum128AsBigIntMatchesManualComposition(t *testing.T) {
	sum := Sum128{Hi: 0x0102030405060708, Lo: 0x090a0b0c0d0e0f10}

	expected := new(big.Int).SetUint64(sum.Hi)
	expected.Lsh(expected, 64)
	expected.Or(expected, new(big.Int).SetUint64(sum.Lo))

	assert.Equal(t, 0, sum.AsBigInt().Cmp(expected))
}

func TestUnmarshalTextRejectsOutOfRangeValue(t *testing.T) {
	var sum Sum128
	tooBig := new(big.Int).Lsh(big.NewInt(1), 200)
	err := sum.UnmarshalText([]byte(tooBig.String()))
	assert.Error(t, err)
}
