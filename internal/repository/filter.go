package repository

import (
	"fmt"
	"strings"
)

// where accumulates AND-ed predicates with positional args.
type where struct {
	parts []string
	args  []any
}

func (w *where) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.parts = append(w.parts, fmt.Sprintf(expr, len(w.args)))
}

func (w *where) String() string {
	if len(w.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.parts, " AND ")
}

type rowScanner interface {
	Scan(dest ...any) error
}
