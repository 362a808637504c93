package synth

import (
	"strings"
	"unicode"
)

// FormatOperationID derives a lowerCamel operation id from a raw handler
// reference: "UsersController.show" -> "usersControllerShow". Distinct
// references that reduce to the same words collide.
func FormatOperationID(raw string) string {
	var b strings.Builder
	for i, word := range splitWords(raw) {
		word = strings.ToLower(word)
		if i > 0 {
			r := []rune(word)
			r[0] = unicode.ToUpper(r[0])
			word = string(r)
		}
		b.WriteString(word)
	}
	return b.String()
}

// splitWords splits on non-alphanumerics and on case boundaries, keeping
// acronyms together: "HTTPServer.get_all" -> [HTTP Server get all]
func splitWords(s string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !isASCIIAlnum(r) {
			flush()
			continue
		}
		if len(current) > 0 && unicode.IsUpper(r) {
			prev := current[len(current)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
