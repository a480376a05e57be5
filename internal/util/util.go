package util

import (
	"strings"
)

// ContainsFold checks if a slice contains a string, ignoring case.
// GitHub logins are case-insensitive.
func ContainsFold(slice []string, val string) bool {
	for _, item := range slice {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// IntPtr returns a pointer to the given int
func IntPtr(i int) *int {
	return &i
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// Deref returns the value pointed to by p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// NormalizeText collapses surrounding whitespace and lower-cases s.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NonNil returns s, or an empty non-nil slice when s is nil.
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
