// Package casex converts identifiers between naming conventions.
//
// Overview:
//   - Responsibility: Split free-form identifiers into words and re-join them
//   - Key Types: none; every converter is a pure string function
//   - Concurrency Model: Stateless, safe for concurrent use
//   - Error Semantics: No errors; empty input yields empty output
//   - Performance Notes: One pass over the input runes per call
//
// Usage:
//
//	casex.Snake("user profile")  // user_profile
//	casex.Pascal("user-profile") // UserProfile
//	casex.Words("HTTPServer")    // [HTTP Server]
package casex

import (
	"strings"
	"unicode"
)

// Words splits s into words. Any rune that is neither a letter nor a digit
// separates words. A lowercase letter or digit followed by an uppercase letter
// starts a new word, as does the last letter of an uppercase run that is
// followed by a lowercase letter.
func Words(s string) []string {
	runes := []rune(s)
	var (
		words []string
		cur   []rune
	)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}

		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}

		cur = append(cur, r)
	}
	flush()

	return words
}

// Snake returns lower-case words joined by "_".
func Snake(s string) string {
	return join(s, "_", strings.ToLower)
}

// Kebab returns lower-case words joined by "-".
func Kebab(s string) string {
	return join(s, "-", strings.ToLower)
}

// Constant returns upper-case words joined by "_".
func Constant(s string) string {
	return join(s, "_", strings.ToUpper)
}

// Dot returns lower-case words joined by ".".
func Dot(s string) string {
	return join(s, ".", strings.ToLower)
}

// Pascal returns capitalized words concatenated.
func Pascal(s string) string {
	return join(s, "", capitalize)
}

// Camel is Pascal with the first word in lower case.
func Camel(s string) string {
	words := Words(s)
	for i, w := range words {
		if i == 0 {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

// Title returns capitalized words joined by a space.
func Title(s string) string {
	return join(s, " ", capitalize)
}

func join(s, sep string, transform func(string) string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = transform(w)
	}
	return strings.Join(words, sep)
}

func capitalize(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
