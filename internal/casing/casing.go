// Package casing translates field names between the wire convention
// (lowerCamelCase) and the storage convention (lower_snake_case).
// The transform is mechanical with no exception list: toSnake prefixes every
// uppercase letter with an underscore and lowers it, toCamel uppercases the
// letter after each underscore. For names made of lowercase words the two
// functions are exact inverses.
package casing

import "strings"

// ToSnake converts a lowerCamelCase name to lower_snake_case.
// "totalPrice" → "total_price", "co2" → "co2".
func ToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts a lower_snake_case name to lowerCamelCase.
// "total_price" → "totalPrice".
func ToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	up := false
	for _, r := range s {
		if r == '_' {
			up = true
			continue
		}
		if up && r >= 'a' && r <= 'z' {
			b.WriteRune(r - ('a' - 'A'))
			up = false
			continue
		}
		up = false
		b.WriteRune(r)
	}
	return b.String()
}

// MapToSnake returns a copy of m with every key passed through ToSnake.
// Used when a handler forwards a partial-update payload keyed by wire names.
func MapToSnake(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[ToSnake(k)] = v
	}
	return out
}

// MapToCamel returns a copy of m with every key passed through ToCamel.
func MapToCamel(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[ToCamel(k)] = v
	}
	return out
}
