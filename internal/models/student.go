package models

import (
	"regexp"
	"sort"
	"strings"
)

// assignmentColumnPrefix marks the raw student columns that carry
// per-assignment day offsets, matched case-insensitively.
const assignmentColumnPrefix = "PROJ"

var legacyFreqPattern = regexp.MustCompile(`^notif_freq_(\d+)$`)

// StudentRecord is the typed projection of one raw student row. Offsets and
// frequency configuration are extracted once here so the engine never touches
// the row's loose shape.
type StudentRecord struct {
	ID                 string
	CourseScope        string
	OptIn              bool
	FirstName          string
	LastName           string
	PreferredFirstName string

	Email       string
	PhoneNumber string
	DiscordID   string
	PhonePref   bool
	EmailPref   bool
	DiscordPref bool

	// NotifFreqDays is the single-column notification window; nil means the
	// legacy per-ordinal list applies instead.
	NotifFreqDays *int
	// LegacyFreqs holds notif_freq_1, notif_freq_2, ... ordered by ordinal.
	LegacyFreqs []int

	// Offsets maps assignment code -> personal day offset.
	Offsets map[string]int
}

// FullName joins first and last name, trimming when either is blank.
func (s StudentRecord) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// AssignmentCodes returns the student's assignment codes of interest in a
// stable order.
func (s StudentRecord) AssignmentCodes() []string {
	codes := make([]string, 0, len(s.Offsets))
	for code := range s.Offsets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StudentFromRow projects a raw column map into a StudentRecord. Unparseable
// offsets default to 0; a missing notif_freq_days leaves NotifFreqDays nil so
// the legacy list (if any) takes over.
func StudentFromRow(row map[string]interface{}) StudentRecord {
	student := StudentRecord{
		ID:                 StringOrDefault(row["id"], ""),
		CourseScope:        strings.TrimSpace(StringOrDefault(row["course_code"], "")),
		OptIn:              BoolOrDefault(row["opt_in"], false),
		FirstName:          StringOrDefault(row["first_name"], ""),
		LastName:           StringOrDefault(row["last_name"], ""),
		PreferredFirstName: StringOrDefault(row["preferred_first_name"], ""),
		Email:              StringOrDefault(row["email"], ""),
		PhoneNumber:        StringOrDefault(row["phone_number"], ""),
		DiscordID:          StringOrDefault(row["discord_id"], ""),
		PhonePref:          BoolOrDefault(row["phone_pref"], false),
		EmailPref:          BoolOrDefault(row["email_pref"], false),
		DiscordPref:        BoolOrDefault(row["discord_pref"], false),
		Offsets:            map[string]int{},
	}

	if raw, ok := row["notif_freq_days"]; ok && raw != nil {
		freq := IntOrDefault(raw, 0)
		student.NotifFreqDays = &freq
	}

	type legacyFreq struct {
		ordinal int
		value   int
	}
	var legacy []legacyFreq

	for key, value := range row {
		if m := legacyFreqPattern.FindStringSubmatch(key); m != nil {
			legacy = append(legacy, legacyFreq{
				ordinal: IntOrDefault(m[1], 0),
				value:   IntOrDefault(value, 0),
			})
			continue
		}
		if strings.HasPrefix(strings.ToUpper(key), assignmentColumnPrefix) {
			student.Offsets[key] = IntOrDefault(value, 0)
		}
	}

	sort.Slice(legacy, func(i, j int) bool { return legacy[i].ordinal < legacy[j].ordinal })
	for _, f := range legacy {
		student.LegacyFreqs = append(student.LegacyFreqs, f.value)
	}

	return student
}
