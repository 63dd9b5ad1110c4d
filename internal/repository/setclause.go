package repository

import (
	"fmt"
	"strings"
)

// setClause renders "col = $n" assignments for the given columns, numbering
// placeholders from firstParam. Column names only ever come from the fixed
// enumerations in the update-input types, never from caller-supplied keys.
func setClause(cols []string, firstParam int) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", col, firstParam+i)
	}
	return strings.Join(parts, ", ")
}
