package static

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator checks input against v. It returns the value to store and whether
// the input is acceptable.
type Validator func(input string, v Validation) (any, bool)

// Built-in validator kinds.
const (
	KindAlpha    = "alpha"
	KindNumber   = "number"
	KindNonEmpty = "nonempty"
)

func builtinValidators() map[string]Validator {
	return map[string]Validator{
		KindAlpha:    validateAlpha,
		KindNumber:   validateNumber,
		KindNonEmpty: validateNonEmpty,
	}
}

// validateAlpha accepts letters only, with the length in runes within Min..Max.
func validateAlpha(input string, v Validation) (any, bool) {
	if !inRange(utf8.RuneCountInString(input), v) {
		return nil, false
	}
	for _, r := range input {
		if !unicode.IsLetter(r) {
			return nil, false
		}
	}
	return input, input != ""
}

// validateNumber accepts an integer within Min..Max and stores it as int.
func validateNumber(input string, v Validation) (any, bool) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return nil, false
	}
	if !inRange(n, v) {
		return nil, false
	}
	return n, true
}

func validateNonEmpty(input string, v Validation) (any, bool) {
	if strings.TrimSpace(input) == "" {
		return nil, false
	}
	return input, inRange(utf8.RuneCountInString(input), v)
}

// inRange treats a zero bound as unset.
func inRange(n int, v Validation) bool {
	if v.Min != 0 && n < v.Min {
		return false
	}
	if v.Max != 0 && n > v.Max {
		return false
	}
	return true
}

func (c *Compiler) validator(kind string) (Validator, error) {
	fn, ok := c.validators[kind]
	if !ok {
		return nil, fmt.Errorf("unknown validator %q", kind)
	}
	return fn, nil
}
