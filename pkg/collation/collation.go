// Package collation ordena y busca texto en español (sin distinguir mayúsculas ni tildes).
package collation

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// SortBy ordena items por key según el orden alfabético español. Es estable.
// collate.Collator no es seguro para uso concurrente, por eso se crea uno por llamada.
func SortBy[T any](items []T, key func(T) string) {
	c := collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}

// Contains indica si pattern aparece en text ignorando mayúsculas y tildes ("acido" encuentra "Ácido").
// Un pattern vacío siempre coincide.
func Contains(text, pattern string) bool {
	if pattern == "" {
		return true
	}
	m := search.New(language.Spanish, search.IgnoreCase, search.IgnoreDiacritics)
	start, _ := m.IndexString(text, pattern)
	return start >= 0
}

// Equal compara ignorando mayúsculas y tildes.
func Equal(a, b string) bool {
	c := collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
	return c.CompareString(a, b) == 0
}
