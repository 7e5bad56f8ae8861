package schema

import "strings"

// Issue is one violated constraint, addressed by the dotted path of the
// offending field.
type Issue struct {
	Path    string
	Message string

	// Standalone suppresses the "path: " prefix when the combined message
	// is rendered; used for messages that already name what went wrong.
	Standalone bool
}

// ValidationError aggregates every issue found in one validation pass. It is
// always produced before any upstream call is attempted.
type ValidationError struct {
	Issues []Issue
}

// Error renders all issues as "<path>: <message>" segments joined by "; ".
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Standalone || issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}
