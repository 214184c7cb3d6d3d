package perception

import "strings"

// Collapse trims s and collapses every whitespace run to a single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize is the canonical form every classifier pattern is written against:
// trimmed, lowercased, single-spaced.
func Normalize(s string) string {
	return strings.ToLower(Collapse(s))
}

// IsCommand reports whether the (collapsed or normalized) input starts with
// the command marker.
func IsCommand(s string) bool {
	return strings.HasPrefix(s, "/")
}

// CommandArgument returns everything after the command verb in raw input,
// case and inner single spaces preserved. "/loadcsv  Data/Sales.csv" -> "Data/Sales.csv".
func CommandArgument(raw string) string {
	_, arg, _ := strings.Cut(Collapse(raw), " ")
	return arg
}
