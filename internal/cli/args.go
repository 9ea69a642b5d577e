package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/followup/internal/domain"
	"github.com/spf13/pflag"
)

// parseID parses a record ID argument, accepting an optional leading "#".
func parseID(arg string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(arg), "#")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q: expected a positive number", arg)
	}
	return id, nil
}

func formatOptionalID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// parseOptionalID parses an already validated ID field; blank is 0.
func parseOptionalID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// parseTaskStatus accepts a backend status value or its label in any case,
// with spaces, dashes or underscores ("awaiting-response").
func parseTaskStatus(s string) (domain.TaskStatus, error) {
	norm := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, col := range domain.KanbanColumns {
		label := strings.ReplaceAll(strings.ToLower(col.Label()), " ", "_")
		if norm == string(col) || norm == label {
			return col, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (use pendiente, en_seguimiento, esperando_respuesta or completado)", s)
}

// overrideString copies the value of flag name into dst when the flag
// was set on the command line. Edits leave unset fields untouched.
func overrideString(fs *pflag.FlagSet, name string, dst *string) {
	if f := fs.Lookup(name); f != nil && f.Changed {
		*dst = f.Value.String()
	}
}

func overrideBool(fs *pflag.FlagSet, name string, dst *bool) {
	if f := fs.Lookup(name); f != nil && f.Changed {
		v, err := fs.GetBool(name)
		if err == nil {
			*dst = v
		}
	}
}
