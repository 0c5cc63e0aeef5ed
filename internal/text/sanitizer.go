package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is 4KB (conservative default).
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer enforces size and encoding rules on inbound messages.
type Sanitizer struct {
	MaxSize int
}

// NewSanitizer returns a Sanitizer with the given byte limit.
// A non-positive limit falls back to DefaultMaxInputSize.
func NewSanitizer(maxSize int) *Sanitizer {
	if maxSize <= 0 {
		maxSize = DefaultMaxInputSize
	}
	return &Sanitizer{MaxSize: maxSize}
}

// Sanitize cleans user input by enforcing the size limit,
// validating UTF-8, and replacing control characters with spaces.
func (s *Sanitizer) Sanitize(input string) (string, error) {
	// Reject rather than truncate so a cut keyword can never change the intent.
	if len(input) > s.MaxSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), s.MaxSize)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Newline, tab and carriage return survive. Other control runes become spaces.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			// A space keeps the words on either side apart.
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
