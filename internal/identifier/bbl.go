package identifier

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIdentifierParse indicates a raw lot identifier that cannot be normalized.
// Records carrying one are dropped from the run, not fatal.
var ErrIdentifierParse = errors.New("malformed borough-block-lot identifier")

// BBL is a normalized borough-block-lot identifier: one borough digit (1-5),
// five block digits, four lot digits.
type BBL string

// Parse normalizes a raw identifier to a BBL. It accepts the compact ten-digit
// form ("1008760001") as well as dash- or dot-separated forms ("1-00876-0001").
func Parse(raw string) (BBL, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, ".", "")

	if len(s) != 10 {
		return "", fmt.Errorf("%w: %q", ErrIdentifierParse, raw)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrIdentifierParse, raw)
		}
	}
	if s[0] < '1' || s[0] > '5' {
		return "", fmt.Errorf("%w: borough digit out of range in %q", ErrIdentifierParse, raw)
	}
	return BBL(s), nil
}

// MustParse is Parse for literals in tests and fixed tables.
func MustParse(raw string) BBL {
	b, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return b
}

func (b BBL) String() string {
	return string(b)
}

// Borough returns the borough code (1 Manhattan, 2 Bronx, 3 Brooklyn,
// 4 Queens, 5 Staten Island).
func (b BBL) Borough() int {
	if len(b) != 10 {
		return 0
	}
	n, _ := strconv.Atoi(string(b[0]))
	return n
}

func (b BBL) Block() int {
	if len(b) != 10 {
		return 0
	}
	n, _ := strconv.Atoi(string(b[1:6]))
	return n
}

func (b BBL) Lot() int {
	if len(b) != 10 {
		return 0
	}
	n, _ := strconv.Atoi(string(b[6:10]))
	return n
}
