package meta

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// EligibleNames returns (spec names ∪ specialCases) \ excluded, without
// duplicates, in natural case-insensitive order. Names are compared ignoring
// case, as PHP does for function names; the first spelling seen is kept, table
// names before special cases.
func EligibleNames(specs []FunctionSpec, specialCases, excluded []string) []string {
	skip := foldSet(excluded)

	seen := make(map[string]bool, len(specs)+len(specialCases))
	var names []string
	add := func(n string) {
		key := strings.ToLower(n)
		if n == "" || skip[key] || seen[key] {
			return
		}
		seen[key] = true
		names = append(names, n)
	}
	for _, s := range specs {
		add(s.Name)
	}
	for _, n := range specialCases {
		add(n)
	}

	SortNatural(names)
	return names
}

// SortNatural sorts names the way PHP natcasesort does: case-insensitively,
// with digit runs compared by numeric value. Names that fold to the same key
// are ordered bytewise so the result is deterministic.
func SortNatural(names []string) {
	fold := cases.Fold()
	keys := make(map[string]string, len(names))
	for _, n := range names {
		keys[n] = fold.String(n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if c := naturalCompare(keys[a], keys[b]); c != 0 {
			return c < 0
		}
		return a < b
	})
}

func naturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			if c := compareDigits(a[si:i], b[sj:j]); c != 0 {
				return c
			}
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return 0
}

// compareDigits compares two digit runs by value without overflowing.
func compareDigits(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
