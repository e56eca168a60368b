package parse

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// functionNames lists the identifiers that may precede a parenthesized group.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"sec": true, "csc": true, "cot": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true,
	"ln": true, "abs": true, "sqrt": true, "d": true,
}

const notOpen = -1

// normalize lower-cases s and drops all whitespace.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func isOperator(r rune) bool {
	return strings.ContainsRune("+-*/^!", r)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || r == 'π'
}

func isNumberStart(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// Tokenize splits s into top-level tokens. A parenthesized group, together
// with any function identifier directly in front of it, is one token; its
// contents are tokenized again when the group is parsed.
func Tokenize(s string) []string {
	src := []rune(normalize(s))
	var tokens []string

	depth := notOpen
	cut := 0
	for i := 0; i < len(src); i++ {
		c := src[i]

		if depth != notOpen {
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				tokens = append(tokens, string(src[cut:i+1]))
				depth = notOpen
				cut = i + 1
			}
			continue
		}

		switch {
		case c == '(':
			depth = 1
		case c == ')' || isOperator(c):
			tokens = append(tokens, string(c))
			cut = i + 1
		case isNumberStart(c):
			end := scanNumber(src, i)
			tokens = append(tokens, string(src[i:end]))
			i = end - 1
			cut = end
		case isLetter(c):
			end := i
			for end < len(src) && isLetter(src[end]) {
				end++
			}
			run := string(src[i:end])
			if end < len(src) && src[end] == '(' {
				prefix := callPrefix(run)
				if atoms, ok := splitAtoms(prefix); ok {
					tokens = append(tokens, atoms...)
					cut = i + len([]rune(prefix))
				} else {
					cut = i
				}
			} else {
				if atoms, ok := splitAtoms(run); ok {
					tokens = append(tokens, atoms...)
				} else {
					tokens = append(tokens, run)
				}
				cut = end
			}
			i = end - 1
		default:
			tokens = append(tokens, string(c))
			cut = i + 1
		}
	}
	if depth != notOpen {
		tokens = append(tokens, string(src[cut:]))
	}

	if len(tokens) == 0 {
		return []string{string(src)}
	}
	return tokens
}

// scanNumber returns the end of the longest numeric literal starting at i.
func scanNumber(src []rune, i int) int {
	end := i
	for end < len(src) {
		c := src[end]
		if isNumberStart(c) || c == 'e' {
			end++
			continue
		}
		if (c == '+' || c == '-') && end > i && src[end-1] == 'e' {
			end++
			continue
		}
		break
	}
	for ; end > i+1; end-- {
		if _, ok := parseNumber(string(src[i:end])); ok {
			break
		}
	}
	return end
}

// parseNumber parses a decimal literal. Literals beyond the float64 range
// are accepted as ±Inf.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// callPrefix returns the part of run in front of the longest function
// identifier that ends it. If no identifier matches, the whole run is
// returned so the group is reported under that name.
func callPrefix(run string) string {
	for k := 0; k < len(run); k++ {
		if functionNames[run[k:]] {
			return run[:k]
		}
	}
	return run
}

// splitAtoms splits a letter run into the atoms x, e and pi.
func splitAtoms(run string) ([]string, bool) {
	var atoms []string
	rest := run
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "x"):
			atoms = append(atoms, "x")
			rest = rest[1:]
		case strings.HasPrefix(rest, "e"):
			atoms = append(atoms, "e")
			rest = rest[1:]
		case strings.HasPrefix(rest, "pi"):
			atoms = append(atoms, "pi")
			rest = rest[2:]
		case strings.HasPrefix(rest, "π"):
			atoms = append(atoms, "pi")
			rest = rest[len("π"):]
		default:
			return nil, false
		}
	}
	return atoms, true
}
