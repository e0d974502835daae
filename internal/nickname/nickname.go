// Package nickname derives the human-friendly "adjective-noun" alias shown
// alongside a version's id. The word lists are carried over verbatim in
// meaning from original_source/src/nickname.rs (igapanovich/biver-rs); only
// the indexing arithmetic is re-expressed in Go.
package nickname

import "fmt"

// New derives a lowercase "adjective-noun" nickname from a 128-bit content
// hash, given as its high and low 64-bit halves (so callers can pass a
// hash.Sum128 without an import cycle). Distinct hashes may produce the
// same nickname: collisions are an accepted UX convenience, not an
// invariant violation (spec.md §9 open question 3).
func New(hi, lo uint64) string {
	adjective := adjectives[wordIndex(hi, lo, uint64(len(adjectives)))]
	noun := nouns[wordIndex(hi, lo, uint64(len(nouns)))]
	return fmt.Sprintf("%s-%s", adjective, noun)
}

// wordIndex reduces a 128-bit value (hi:lo) modulo n using the standard
// double-width remainder, matching the original's `random_value % len`
// taken over the full u128 value rather than either half alone.
func wordIndex(hi, lo, n uint64) uint64 {
	// (hi*2^64 + lo) mod n, computed without a big.Int: reduce the high
	// word first by its own place value, then fold in the low word.
	hiMod := hi % n
	shift := pow2_64Mod(n)
	combined := (mulMod(hiMod, shift, n) + lo%n) % n
	return combined
}

// pow2_64Mod returns 2^64 mod n.
func pow2_64Mod(n uint64) uint64 {
	// 2^64 mod n = ((2^32 mod n) * (2^32 mod n)) mod n
	const two32 = uint64(1) << 32
	p32 := two32 % n
	return mulMod(p32, p32, n)
}

// mulMod computes (a*b) mod n without overflowing uint64, using the
// standard double-and-add approach since Go has no native 128-bit integer.
func mulMod(a, b, n uint64) uint64 {
	a %= n
	var result uint64
	for b > 0 {
		if b&1 == 1 {
			result = (result + a) % n
		}
		a = (a * 2) % n
		b >>= 1
	}
	return result
}

// Max returns the longest nickname that New can produce, for column-width
// alignment in status/log output (mirrors the teacher's
// nickname::max_length() used to pad its status table).
func Max() int {
	return longest(adjectives) + 1 + longest(nouns)
}

func longest(words []string) int {
	max := 0
	for _, w := range words {
		if len(w) > max {
			max = len(w)
		}
	}
	return max
}
