package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"PROJ1B", "PROJ1"},
		{"PROJ1", "PROJ1"},
		{"PROJ12C", "PROJ12"},
		{"proj2b", "proj2"},
		{"1PROJ", ""},
		{"PROJ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BaseCode(tc.code), "code %q", tc.code)
	}
}

func TestAssignmentNumber(t *testing.T) {
	n, ok := AssignmentNumber("PROJ3B")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = AssignmentNumber("LAB12-extra4")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = AssignmentNumber("FINAL")
	assert.False(t, ok)

	_, ok = AssignmentNumber("")
	assert.False(t, ok)
}
