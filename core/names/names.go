// Package names parses the qualified command names accepted by the
// command resolver.
//
// A command may be addressed by its short name ("Get-ChildItem") or
// qualified by the module that defines it ("files\Get-ChildItem").
package names

import "strings"

// Separator splits an optional namespace qualifier from a short
// command name.
const Separator = `\`

// QualifiedName is a command name with an optional namespace
// qualifier. The parser does not check that the namespace refers to an
// imported module; lookups decide what an unknown qualifier means.
type QualifiedName struct {
	// Namespace is the qualifier, empty for unqualified names.
	Namespace string
	// Name is the short command name and is never empty for a parsed
	// value.
	Name string
}

// Parse splits raw into an optional namespace and a short name.
//
// At most one separator is accepted, and neither segment may be empty.
// The reported bool is false for anything else, including the empty
// string. Wildcard characters pass through untouched.
func Parse(raw string) (QualifiedName, bool) {
	switch parts := strings.Split(raw, Separator); len(parts) {
	case 1:
		if parts[0] == "" {
			return QualifiedName{}, false
		}
		return QualifiedName{Name: parts[0]}, true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return QualifiedName{}, false
		}
		return QualifiedName{Namespace: parts[0], Name: parts[1]}, true
	default:
		return QualifiedName{}, false
	}
}

// Qualified reports whether a namespace qualifier was present.
func (q QualifiedName) Qualified() bool {
	return q.Namespace != ""
}

// String returns the full name. For any value produced by Parse it
// reconstructs the original input exactly.
func (q QualifiedName) String() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + Separator + q.Name
}
