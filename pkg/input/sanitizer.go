// Package input cleans raw user input before it reaches menu nodes.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSize is 4KB (conservative default).
const DefaultMaxSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer enforces a size limit, validates UTF-8 and strips control characters.
type Sanitizer struct {
	MaxSize int
}

// New returns a Sanitizer; maxSize <= 0 selects DefaultMaxSize.
func New(maxSize int) Sanitizer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return Sanitizer{MaxSize: maxSize}
}

// Sanitize cleans input with the default limit.
func Sanitize(in string) (string, error) {
	return New(DefaultMaxSize).Sanitize(in)
}

// Sanitize rejects oversized or malformed input and removes control
// characters other than newline, tab and carriage return.
func (s Sanitizer) Sanitize(in string) (string, error) {
	limit := s.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	// Oversized input is rejected, never truncated.
	if len(in) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(in), limit)
	}

	if !utf8.ValidString(in) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range in {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return in, nil
	}

	var b strings.Builder
	b.Grow(len(in))
	for _, r := range in {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
