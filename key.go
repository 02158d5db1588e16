package alist

import (
	"bytes"
	"strings"
)

// EqualComparable returns a key-equality predicate that compares
// with ==.  It is what New installs.
func EqualComparable[K comparable]() func(K, K) bool {
	return func(a, b K) bool { return a == b }
}

// EqualBytes compares byte-slice keys by content.
func EqualBytes() func([]byte, []byte) bool {
	return bytes.Equal
}

// EqualFold compares string keys case-insensitively, under Unicode
// simple case folding.
func EqualFold() func(string, string) bool {
	return strings.EqualFold
}
