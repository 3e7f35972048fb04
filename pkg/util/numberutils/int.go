package numberutils

import (
	"strconv"
	"strings"
)

// ToIntWithDefault converts the given string to an integer.
// If the string cannot be converted, it returns the provided default value.
func ToIntWithDefault(s string, defaultVal int) int {
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return i
	}
	return defaultVal
}

// IsIntInRange checks if the given number is within the specified range (inclusive).
func IsIntInRange(num, min, max int) bool {
	return num >= min && num <= max
}

// ClampInt bounds num to the inclusive range [min, max].
func ClampInt(num, min, max int) int {
	if num < min {
		return min
	}
	if num > max {
		return max
	}
	return num
}
