package utils

import (
	"database/sql"
	"strings"
)

// NullString stores blank optional text as SQL NULL.
func NullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
