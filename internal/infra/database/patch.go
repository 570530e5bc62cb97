package database

import (
	"fmt"
	"strings"
)

// column is one assignment of a partial update.
type column struct {
	name string
	set  bool
	arg  any
}

// buildUpdate renders an UPDATE for the set columns only. Column names always come from
// the caller's fixed list, never from request input. ok is false when nothing is set.
func buildUpdate(table string, id int64, touch bool, cols []column) (query string, args []any, ok bool) {
	var assignments []string
	for _, c := range cols {
		if !c.set {
			continue
		}
		args = append(args, c.arg)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", c.name, len(args)))
	}
	if len(assignments) == 0 {
		return "", nil, false
	}
	if touch {
		assignments = append(assignments, "updated_at = NOW()")
	}
	args = append(args, id)
	query = fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(assignments, ", "), len(args))
	return query, args, true
}
