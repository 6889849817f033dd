// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SecretPolicy defines the minimum strength of operator-chosen secrets such
// as the session signing key.
type SecretPolicy struct {
	// MinLength is the minimum length in characters.
	MinLength int

	// MinCharClasses is how many of upper, lower, digit and symbol must appear.
	MinCharClasses int

	// MaxConsecutiveRepeats limits runs of one character (0 = disabled).
	MaxConsecutiveRepeats int
}

// DefaultSecretPolicy returns the policy applied by the strong_secret validator.
func DefaultSecretPolicy() SecretPolicy {
	return SecretPolicy{
		MinLength:             16,
		MinCharClasses:        3,
		MaxConsecutiveRepeats: 3,
	}
}

// weakFragments are substrings that make a secret guessable regardless of
// its length.
var weakFragments = []string{
	"password", "passw0rd", "changeme", "secret", "admin", "letmein",
	"welcome", "nmsconsole", "123456", "qwerty", "asdf", "zxcv", "1qaz",
}

// Check returns every way secret falls short of the policy. An empty result
// means the secret is acceptable.
func (p SecretPolicy) Check(secret string) []string {
	var problems []string

	if n := utf8.RuneCountInString(secret); n < p.MinLength {
		problems = append(problems, fmt.Sprintf("must be at least %d characters (got %d)", p.MinLength, n))
	}

	if classes := charClassCount(secret); classes < p.MinCharClasses {
		problems = append(problems,
			fmt.Sprintf("must mix at least %d of upper case, lower case, digits and symbols", p.MinCharClasses))
	}

	if p.MaxConsecutiveRepeats > 0 && maxConsecutiveRepeats(secret) > p.MaxConsecutiveRepeats {
		problems = append(problems,
			fmt.Sprintf("cannot repeat a character more than %d times in a row", p.MaxConsecutiveRepeats))
	}

	lower := strings.ToLower(secret)
	for _, fragment := range weakFragments {
		if strings.Contains(lower, fragment) {
			problems = append(problems, "contains a common word or keyboard pattern")
			break
		}
	}

	return problems
}

func charClassCount(s string) int {
	var upper, lower, digit, symbol int
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = 1
		case unicode.IsLower(r):
			lower = 1
		case unicode.IsDigit(r):
			digit = 1
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = 1
		}
	}
	return upper + lower + digit + symbol
}

// maxConsecutiveRepeats returns the longest run of one repeated rune.
func maxConsecutiveRepeats(s string) int {
	longest, run := 0, 0
	var last rune
	for i, r := range s {
		if i > 0 && r == last {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		last = r
	}
	return longest
}
