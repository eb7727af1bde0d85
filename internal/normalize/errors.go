package normalize

import (
	"fmt"
	"strings"
)

// DataError reports a raw table that cannot be turned into a canonical
// series. It is fatal to the current run.
type DataError struct {
	Op        string   // which step failed, e.g. "resolve price column"
	Field     string   // requested field, when the step searched for one
	Tried     []string // strategies evaluated, in order
	Available []string // columns present on the table
	Reason    string
}

func (e *DataError) Error() string {
	var b strings.Builder
	b.WriteString("normalize: ")
	b.WriteString(e.Op)
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	var details []string
	if len(e.Tried) > 0 {
		details = append(details, "tried: "+strings.Join(e.Tried, ", "))
	}
	if len(e.Available) > 0 {
		details = append(details, "available: "+strings.Join(e.Available, ", "))
	}
	if len(details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(details, "; "))
		b.WriteString(")")
	}
	return b.String()
}
