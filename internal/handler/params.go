package handler

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/fedra-io/fedra/internal/errs"
)

// Params is the raw key-value parameter block of a datasource, as decoded
// from JSON or YAML. Helper methods normalise the loosely-typed values the
// decoders produce (float64 for JSON numbers, int for YAML, strings, …).
type Params map[string]any

// Str returns the string value of key, or "" when absent or not a string.
func (p Params) Str(key string) string {
	s, _ := p[key].(string)
	return s
}

// Int returns the integer value of key, accepting the numeric encodings
// JSON and YAML decoders produce, plus numeric strings. Returns an
// ErrKindInvalidConfig error when the value cannot be read as an integer.
func (p Params) Int(key string) (int, error) {
	switch v := p[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, errs.Newf(errs.ErrKindInvalidConfig, "parameter %q must be an integer, got %v", key, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, errs.Newf(errs.ErrKindInvalidConfig, "parameter %q must be an integer, got %q", key, v.String())
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, errs.Newf(errs.ErrKindInvalidConfig, "parameter %q must be an integer, got %q", key, v)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, errs.Newf(errs.ErrKindInvalidConfig, "parameter %q must be an integer, got %T", key, v)
	}
}

// Missing returns the required keys that are absent or empty, sorted.
// A key counts as present when it holds a non-empty string or any numeric
// value — an explicitly empty string is still a configuration error, per
// the all-fields-present invariant of the connection configuration.
func (p Params) Missing(required ...string) []string {
	var missing []string
	for _, key := range required {
		switch v := p[key].(type) {
		case nil:
			missing = append(missing, key)
		case string:
			if strings.TrimSpace(v) == "" {
				missing = append(missing, key)
			}
		default:
			// Numbers and bools count as present; range checks are the
			// engine's job (e.g. port must be positive).
		}
	}
	sort.Strings(missing)
	return missing
}

// RequireParams fails with a single ErrKindInvalidConfig error naming every
// missing required key. The error lists all absences at once so the caller
// can fix the whole configuration block in one pass.
func RequireParams(p Params, required ...string) error {
	missing := p.Missing(required...)
	if len(missing) == 0 {
		return nil
	}
	return errs.Newf(errs.ErrKindInvalidConfig,
		"missing required connection parameters: %s", strings.Join(missing, ", "))
}
