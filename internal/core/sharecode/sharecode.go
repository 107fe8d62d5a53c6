// Package sharecode implements the bit-exact share code codec
// A code is the literal prefix CSGO- followed by five hyphenated groups of
// five symbols from a 57-character alphabet. The 25 symbols are the base-57
// digits of an 18-byte integer, least significant digit first. The bytes
// carry match id (8, little-endian), outcome id (8, little-endian) and
// token id (2, big-endian). Alphabet and grouping are an external contract
// and must never change without a version marker
package sharecode

import (
	"encoding/binary"
	"errors"
	"math/big"
	"strings"
)

const (
	// alphabet excludes visually ambiguous symbols; 57 entries, case-sensitive
	alphabet = "ABCDEFGHJKLMNOPQRSTUVWXYZabcdefhijkmnopqrstuvwxyz23456789"

	prefix     = "CSGO-"
	groupCount = 5
	groupLen   = 5
	digitCount = groupCount * groupLen
	byteCount  = 18
)

// ErrInvalidFormat reports a code that violates the share code grammar
// decoding never guesses: a malformed code fails rather than yielding garbage ids
var ErrInvalidFormat = errors.New("sharecode: invalid format")

// Identifier is the numeric triple carried by a share code
// a pure value, produced by Decode or assembled for Encode
type Identifier struct {
	MatchID   uint64
	OutcomeID uint64
	TokenID   uint16
}

var base = big.NewInt(int64(len(alphabet)))

// Decode parses a share code into its Identifier
// returns ErrInvalidFormat for a bad prefix, wrong grouping, or any symbol
// outside the alphabet. Well-formed codes decode as a pure bijection with
// no semantic validation of the resulting ids
func Decode(code string) (Identifier, error) {
	body, ok := strings.CutPrefix(code, prefix)
	if !ok {
		return Identifier{}, ErrInvalidFormat
	}
	groups := strings.Split(body, "-")
	if len(groups) != groupCount {
		return Identifier{}, ErrInvalidFormat
	}
	var digits [digitCount]byte
	n := 0
	for _, g := range groups {
		if len(g) != groupLen {
			return Identifier{}, ErrInvalidFormat
		}
		n += copy(digits[n:], g)
	}

	// digits[0] is the least significant, so accumulate from the far end
	acc := new(big.Int)
	for i := digitCount - 1; i >= 0; i-- {
		idx := strings.IndexByte(alphabet, digits[i])
		if idx < 0 {
			return Identifier{}, ErrInvalidFormat
		}
		acc.Mul(acc, base)
		acc.Add(acc, big.NewInt(int64(idx)))
	}
	// 57^25 slightly exceeds 2^144, so a grammar-valid code can still
	// overflow the 18-byte payload; such codes were never produced by Encode
	if acc.BitLen() > byteCount*8 {
		return Identifier{}, ErrInvalidFormat
	}

	var be [byteCount]byte
	acc.FillBytes(be[:])
	var buf [byteCount]byte
	for i := range be {
		buf[i] = be[byteCount-1-i]
	}

	return Identifier{
		MatchID:   binary.LittleEndian.Uint64(buf[0:8]),
		OutcomeID: binary.LittleEndian.Uint64(buf[8:16]),
		TokenID:   uint16(buf[16])<<8 | uint16(buf[17]),
	}, nil
}

// Encode renders an Identifier as a share code
// exact inverse of Decode for every representable triple
func Encode(id Identifier) string {
	var buf [byteCount]byte
	binary.LittleEndian.PutUint64(buf[0:8], id.MatchID)
	binary.LittleEndian.PutUint64(buf[8:16], id.OutcomeID)
	buf[16] = byte(id.TokenID >> 8)
	buf[17] = byte(id.TokenID)

	// big.Int wants most significant byte first
	var be [byteCount]byte
	for i := range buf {
		be[i] = buf[byteCount-1-i]
	}
	acc := new(big.Int).SetBytes(be[:])

	var digits [digitCount]byte
	rem := new(big.Int)
	for i := 0; i < digitCount; i++ {
		acc.DivMod(acc, base, rem)
		digits[i] = alphabet[rem.Int64()]
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + digitCount + groupCount - 1)
	sb.WriteString(prefix)
	for g := 0; g < groupCount; g++ {
		if g > 0 {
			sb.WriteByte('-')
		}
		sb.Write(digits[g*groupLen : (g+1)*groupLen])
	}
	return sb.String()
}
