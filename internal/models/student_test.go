package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentFromRowProjection(t *testing.T) {
	student := StudentFromRow(map[string]interface{}{
		"id":                   "s1",
		"course_code":          " CS101 ",
		"opt_in":               true,
		"first_name":           "Ada",
		"last_name":            "Lovelace",
		"preferred_first_name": "",
		"email":                "ada@example.com",
		"phone_number":         "555-0101",
		"discord_id":           "ada",
		"phone_pref":           true,
		"email_pref":           false,
		"discord_pref":         "t",
		"notif_freq_days":      int64(3),
		"PROJ1":                int64(0),
		"PROJ2B":               "2",
		"proj3":                1.0,
	})

	assert.Equal(t, "s1", student.ID)
	assert.Equal(t, "CS101", student.CourseScope)
	assert.True(t, student.OptIn)
	assert.Equal(t, "Ada Lovelace", student.FullName())
	assert.True(t, student.PhonePref)
	assert.False(t, student.EmailPref)
	assert.True(t, student.DiscordPref)

	require.NotNil(t, student.NotifFreqDays)
	assert.Equal(t, 3, *student.NotifFreqDays)

	// Offset columns are matched by prefix, case-insensitively.
	assert.Equal(t, map[string]int{"PROJ1": 0, "PROJ2B": 2, "proj3": 1}, student.Offsets)
	assert.Equal(t, []string{"PROJ1", "PROJ2B", "proj3"}, student.AssignmentCodes())
}

func TestStudentFromRowLegacyFrequencies(t *testing.T) {
	student := StudentFromRow(map[string]interface{}{
		"id":           "s1",
		"notif_freq_3": int64(1),
		"notif_freq_1": int64(5),
		"notif_freq_2": int64(3),
	})

	assert.Nil(t, student.NotifFreqDays)
	assert.Equal(t, []int{5, 3, 1}, student.LegacyFreqs)
}

func TestStudentFromRowDefaults(t *testing.T) {
	student := StudentFromRow(map[string]interface{}{
		"id":     "s1",
		"PROJ1":  "not-a-number",
		"opt_in": nil,
	})

	assert.False(t, student.OptIn)
	assert.Nil(t, student.NotifFreqDays)
	assert.Equal(t, 0, student.Offsets["PROJ1"])
	assert.Equal(t, "", student.FullName())
}

func TestIntOrDefault(t *testing.T) {
	cases := []struct {
		raw  interface{}
		want int
	}{
		{nil, 7},
		{int64(4), 4},
		{float64(2.9), 2},
		{"3", 3},
		{"1.0", 1},
		{[]byte("5"), 5},
		{"", 7},
		{"soon", 7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IntOrDefault(tc.raw, 7), "raw %v", tc.raw)
	}
}

func TestBoolOrDefault(t *testing.T) {
	assert.True(t, BoolOrDefault(true, false))
	assert.True(t, BoolOrDefault(int64(1), false))
	assert.True(t, BoolOrDefault("yes", false))
	assert.True(t, BoolOrDefault([]byte("t"), false))
	assert.False(t, BoolOrDefault("0", true))
	assert.False(t, BoolOrDefault(float64(0), true))
	assert.True(t, BoolOrDefault(nil, true))
	assert.False(t, BoolOrDefault("maybe", false))
}

func TestStringOrDefault(t *testing.T) {
	assert.Equal(t, "x", StringOrDefault("x", "d"))
	assert.Equal(t, "x", StringOrDefault([]byte("x"), "d"))
	assert.Equal(t, "d", StringOrDefault(nil, "d"))
	assert.Equal(t, "42", StringOrDefault(42, "d"))
}
