package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse-or-default helpers. Every loose value read off a source row goes
// through one of these, so fallback behavior cannot drift between call sites.
// Default table: offsets 0, frequencies 0, flags false, text "".

// IntOrDefault coerces a raw row value to an int, returning def when the
// value is absent, blank, or unparseable. Database drivers hand back int64,
// float64, []byte, or string depending on the column; all are accepted.
func IntOrDefault(raw interface{}, def int) int {
	switch v := raw.(type) {
	case nil:
		return def
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case []byte:
		return parseIntString(string(v), def)
	case string:
		return parseIntString(v, def)
	default:
		return parseIntString(fmt.Sprint(raw), def)
	}
}

func parseIntString(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Spreadsheet exports sometimes carry "1.0"-style numerics.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return n
}

// StringOrDefault coerces a raw row value to a string.
func StringOrDefault(raw interface{}, def string) string {
	switch v := raw.(type) {
	case nil:
		return def
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(raw)
	}
}

// BoolOrDefault coerces a raw row value to a bool. Accepts native bools,
// numeric truthiness, and the usual textual forms.
func BoolOrDefault(raw interface{}, def bool) bool {
	switch v := raw.(type) {
	case nil:
		return def
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []byte:
		return parseBoolString(string(v), def)
	case string:
		return parseBoolString(v, def)
	default:
		return def
	}
}

func parseBoolString(s string, def bool) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return def
	case "1", "t", "true", "yes", "y":
		return true
	case "0", "f", "false", "no", "n":
		return false
	default:
		return def
	}
}
