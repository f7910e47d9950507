package nodescript

import (
	"strings"
)

// EmptyList is the groovy literal of a list with no element.
const EmptyList = "[]"

// EncodeNodes returns the groovy list literal of the node names, in
// input order: [ 'n1', 'n2' ].
//
// Names are not escaped. A name containing a single quote produces an
// invalid literal.
func EncodeNodes(nodes []string) string {
	if len(nodes) == 0 {
		return EmptyList
	}
	l := make([]string, len(nodes))
	for i, node := range nodes {
		l[i] = "'" + node + "'"
	}
	return "[ " + strings.Join(l, ", ") + " ]"
}

// SplitNodes flattens a list of whitespace-delimited node name lists.
// Quotes and backslashes are part of the names.
//
// Example:
//
//	SplitNodes([]string{"n1 n2", "n3"}) => [n1 n2 n3]
func SplitNodes(args []string) []string {
	l := make([]string, 0, len(args))
	for _, arg := range args {
		l = append(l, strings.Fields(arg)...)
	}
	return l
}
