// Package classify holds the pure number-theory predicates behind the
// classification endpoint, plus the parser that turns a raw query token
// into an int64.
//
// Nothing in here does I/O or keeps state, so every function is safe to
// call from any number of goroutines at once.
package classify

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned (wrapped) by ParseNumber for any token that
// is not a base-10 integer in the int64 range.
var ErrInvalidNumber = errors.New("invalid number")

// Property names reported in Classification.Properties.
const (
	PropertyArmstrong = "armstrong"
	PropertyOdd       = "odd"
	PropertyEven      = "even"
)

// Classification is the set of facts computed for a single integer.
type Classification struct {
	Number     int64
	IsPrime    bool
	IsPerfect  bool
	Properties []string
	DigitSum   int
}

// ParseNumber converts a raw token such as "371", " -12 " or "+5" into an
// int64. Empty, fractional or out-of-range input is rejected.
func ParseNumber(raw string) (int64, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidNumber)
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}

	return n, nil
}

// Classify runs every predicate against n.
func Classify(n int64) Classification {
	return Classification{
		Number:     n,
		IsPrime:    IsPrime(n),
		IsPerfect:  IsPerfect(n),
		Properties: Properties(n),
		DigitSum:   DigitSum(n),
	}
}

// IsPrime reports whether n is prime. Numbers below 2, negatives
// included, are never prime.
//
// ProbablyPrime(0) runs Baillie-PSW only, which has no known
// counterexample and is proven exact for inputs below 2^64, so the answer
// matches trial division without its O(sqrt(n)) cost.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(n).ProbablyPrime(0)
}

// perfectNumbers is every perfect number that fits in an int64. They are
// all even (Euclid-Euler); no odd perfect number exists below 10^1500.
var perfectNumbers = map[int64]struct{}{
	6:                   {},
	28:                  {},
	496:                 {},
	8128:                {},
	33550336:            {},
	8589869056:          {},
	137438691328:        {},
	2305843008139952128: {},
}

// IsPerfect reports whether n equals the sum of its proper divisors.
func IsPerfect(n int64) bool {
	_, ok := perfectNumbers[n]
	return ok
}

// IsArmstrong reports whether n equals the sum of its digits each raised to
// the number of digits. Negative numbers are never Armstrong numbers.
func IsArmstrong(n int64) bool {
	if n < 0 {
		return false
	}

	digits := decimalDigits(n)
	power := len(digits)
	target := uint64(n)

	var sum uint64
	for _, d := range digits {
		sum += ipow(uint64(d), power)
		if sum > target {
			return false
		}
	}

	return sum == target
}

// IsOdd reports whether n is odd. Go's % truncates toward zero, so for a
// negative odd n the remainder is -1, which is still non-zero.
func IsOdd(n int64) bool {
	return n%2 != 0
}

// DigitSum adds up the decimal digits of n. The sign is not a digit and
// does not contribute.
func DigitSum(n int64) int {
	sum := 0
	for _, d := range decimalDigits(n) {
		sum += d
	}
	return sum
}

// Properties lists the named properties of n: "armstrong" first when it
// applies, then exactly one of "odd" or "even".
func Properties(n int64) []string {
	props := make([]string, 0, 2)
	if IsArmstrong(n) {
		props = append(props, PropertyArmstrong)
	}
	if IsOdd(n) {
		props = append(props, PropertyOdd)
	} else {
		props = append(props, PropertyEven)
	}
	return props
}

// decimalDigits returns the digits of |n| from most to least significant.
// It works from the string form so math.MinInt64 needs no special case.
func decimalDigits(n int64) []int {
	s := strconv.FormatInt(n, 10)
	digits := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		digits = append(digits, int(r-'0'))
	}
	return digits
}

// ipow is integer exponentiation for small bases. 9^19 still fits in a
// uint64, which covers every int64.
func ipow(base uint64, exp int) uint64 {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
