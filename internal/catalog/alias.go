package catalog

import (
	"regexp"
	"strconv"
)

var (
	baseCodePattern = regexp.MustCompile(`^[A-Za-z]+\d+`)
	numberPattern   = regexp.MustCompile(`\d+`)
)

// BaseCode returns the base alias of an assignment code: the leading run of
// letters followed by digits ("PROJ1B" -> "PROJ1"). Empty when the code does
// not start with that shape.
func BaseCode(code string) string {
	return baseCodePattern.FindString(code)
}

// AssignmentNumber extracts the first integer appearing anywhere in the code.
// The second return value reports whether one was found.
func AssignmentNumber(code string) (int, bool) {
	m := numberPattern.FindString(code)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
