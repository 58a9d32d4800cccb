package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotANumber        = errors.New("config: not a number")
	ErrNonPositiveNumber = errors.New("config: must be a positive number")
)

// ParseSeed reads the leading base-10 integer of s, ignoring
// surrounding whitespace and any trailing text ("42abc" -> 42).
func ParseSeed(s string) (int64, error) {
	return leadingInt(s)
}

// ParseFallSpeed reads a seed-style integer and requires it to be
// positive.
func ParseFallSpeed(s string) (int, error) {
	n, err := leadingInt(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrNonPositiveNumber, n)
	}
	return int(n), nil
}

func leadingInt(s string) (int64, error) {
	t := strings.TrimSpace(s)
	end := 0
	if end < len(t) && (t[end] == '+' || t[end] == '-') {
		end++
	}
	digits := end
	for end < len(t) && t[end] >= '0' && t[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	n, err := strconv.ParseInt(t[:end], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return n, nil
}
