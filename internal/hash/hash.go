// Package hash streams the content hash used to detect changes to the
// versioned file and to derive nicknames. It is a thin wrapper around
// zeebo/xxh3, the one library in the ecosystem offering a streaming
// XXH3-128 implementation (see DESIGN.md).
package hash

import (
	"fmt"
	"io"
	"math/big"

	"github.com/zeebo/xxh3"
)

// Sum128 is the 128-bit XXH3 digest of a file's content, represented as the
// two 64-bit halves the upstream library produces. It round-trips through
// JSON as a decimal string (see MarshalText) so large values survive
// serialisation without precision loss in non-Go readers of data.json.
type Sum128 struct {
	Hi uint64
	Lo uint64
}

// XXH3_128 streams r and returns its XXH3-128 digest.
func XXH3_128(r io.Reader) (Sum128, error) {
	hasher := xxh3.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return Sum128{}, fmt.Errorf("hash: reading content: %w", err)
	}
	sum := hasher.Sum128()
	return Sum128{Hi: sum.Hi, Lo: sum.Lo}, nil
}

// Equal reports whether two digests are the same value.
func (s Sum128) Equal(other Sum128) bool {
	return s.Hi == other.Hi && s.Lo == other.Lo
}

// AsBigInt packs the digest into the 128-bit integer the data.json schema
// persists versioned_file_xxh3_128 as (a decimal string, so non-Go readers
// of the metadata document don't need 128-bit integer support).
func (s Sum128) AsBigInt() *big.Int {
	v := new(big.Int).SetUint64(s.Hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(s.Lo))
	return v
}

// MarshalText implements encoding.TextMarshaler, rendering the digest as a
// base-10 string matching the data.json schema's
// "versioned_file_xxh3_128": <u128 as decimal> contract.
func (s Sum128) MarshalText() ([]byte, error) {
	return []byte(s.AsBigInt().String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sum128) UnmarshalText(text []byte) error {
	v, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return fmt.Errorf("hash: invalid decimal u128 %q", text)
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return fmt.Errorf("hash: value %q out of range for a u128", text)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(v, mask)
	hi := new(big.Int).Rsh(v, 64)
	s.Lo = lo.Uint64()
	s.Hi = hi.Uint64()
	return nil
}

// NicknameSeed folds the digest down to the single 128-bit value
// nickname.New expects, matching the original's use of the raw content hash
// as the nickname's random seed.
func (s Sum128) NicknameSeed() (hi, lo uint64) {
	return s.Hi, s.Lo
}
