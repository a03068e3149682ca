package recipe

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerRussian = cases.Lower(language.Russian)

// NormalizeIngredient trims, NFC-normalizes and lowercases an ingredient name.
// Inner whitespace runs collapse to a single space so "сливочное  масло" and
// "сливочное масло" are the same ingredient.
func NormalizeIngredient(name string) string {
	name = norm.NFC.String(name)
	name = strings.Join(strings.Fields(name), " ")
	return lowerRussian.String(name)
}

// NormalizeSet normalizes every name and drops blanks and duplicates.
// The first occurrence of each name keeps its position.
func NormalizeSet(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := NormalizeIngredient(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// FormatSteps numbers steps one per line: "1. first\n2. second".
func FormatSteps(steps []string) string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = fmt.Sprintf("%d. %s", i+1, step)
	}
	return strings.Join(lines, "\n")
}
