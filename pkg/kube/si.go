package kube

import (
	"fmt"
	"strconv"
	"strings"
)

var siSuffixes = map[string]float64{
	"m":  1e-3,
	"K":  1e3,
	"M":  1e6,
	"G":  1e9,
	"T":  1e12,
	"P":  1e15,
	"E":  1e18,
	"Ki": 1 << 10,
	"Mi": 1 << 20,
	"Gi": 1 << 30,
	"Ti": 1 << 40,
	"Pi": 1 << 50,
	"Ei": 1 << 60,
}

// SINumber parses a numeric string with an optional SI decimal or binary
// suffix: 500m is 0.5, 2Ki is 2048, 3G is 3e9.
func SINumber(value string) (float64, error) {
	idx := strings.IndexFunc(value, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	})
	if idx == -1 {
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse number %q: %w", value, err)
		}
		return num, nil
	}

	num, err := strconv.ParseFloat(value[:idx], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse number %q: %w", value, err)
	}

	multiplier, ok := siSuffixes[value[idx:]]
	if !ok {
		return 0, fmt.Errorf("unrecognized suffix %q in %q", value[idx:], value)
	}
	return num * multiplier, nil
}
