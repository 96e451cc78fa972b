// Package field provides the token-level validators of RVVI-TEXT records.
//
// Every record field is one of three lexical shapes: an identifier, a
// decimal integer or a hexadecimal integer. The parsers here turn a token
// into a typed value or fail with a KindFormat error; range checks against
// architectural widths are done with CheckWidth.
package field

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// ParseIdentifier accepts tokens whose first character is a letter and
// whose remaining characters are letters, digits or underscores.
func ParseIdentifier(token string) (string, error) {
	if token == "" {
		return "", Errorf(KindFormat, "Token '%s' is not a valid string (must start with an alphabetic character).", token)
	}

	for i, c := range token {
		if i == 0 && !unicode.IsLetter(c) {
			return "", Errorf(KindFormat,
				"Token '%s' is not a valid string (must start with an alphabetic character).", token)
		}
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			continue
		}
		return "", Errorf(KindFormat,
			"Token '%s' is not a valid string (must contain only alphanumeric characters or underscores).", token)
	}

	return token, nil
}

// ParseInt parses a base-10 integer with an optional leading sign.
func ParseInt(token string) (int64, error) {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, Errorf(KindFormat, "Token '%s' is not a valid integer.", token)
	}
	return v, nil
}

// ParseHex parses an unsigned base-16 integer of any width. A 0x or 0X
// prefix is allowed but not required.
func ParseHex(token string) (*big.Int, error) {
	digits := token
	if len(digits) > 2 && (strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X")) {
		digits = digits[2:]
	}

	for _, c := range digits {
		if !isHexDigit(c) {
			return nil, Errorf(KindFormat, "Token '%s' is not a valid hexadecimal number.", token)
		}
	}

	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, Errorf(KindFormat, "Token '%s' is not a valid hexadecimal number.", token)
	}
	return v, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// FitsWidth reports whether v < 2^bits. v must be non-negative.
func FitsWidth(v *big.Int, bits int) bool {
	if bits < 0 {
		return false
	}
	return v.BitLen() <= bits
}

// CheckWidth fails with a KindRange error naming what and limit when v
// does not fit in bits.
func CheckWidth(v *big.Int, bits int, what, limit string) error {
	if FitsWidth(v, bits) {
		return nil
	}
	return Errorf(KindRange, "%s value %s exceeds %s limit (%d bits).", what, FormatHex(v), limit, bits)
}

// FormatHex renders v as 0x-prefixed lowercase hex.
func FormatHex(v *big.Int) string {
	return "0x" + v.Text(16)
}
