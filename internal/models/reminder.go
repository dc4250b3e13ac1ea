package models

import "time"

// Delivery channel identifiers, in the order channels are evaluated.
const (
	ChannelSMS     = "sms"
	ChannelEmail   = "email"
	ChannelDiscord = "discord"
	ChannelNone    = "none"
)

// NoChannelTarget is the sentinel target paired with ChannelNone when a
// student has no opted-in channel.
const NoChannelTarget = "(no opted-in channels)"

// Channel is one opted-in delivery route for a student.
type Channel struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

// DeadlineRow is one raw record from the shared deadlines source. Due stays a
// string here; parsing happens when the catalog is built.
type DeadlineRow struct {
	CourseScope    string
	AssignmentCode string
	AssignmentName string
	Due            string
}

// ResourceRow is one raw record from the assignment-resources table.
type ResourceRow struct {
	CourseScope    string `db:"course_code"`
	AssignmentCode string `db:"assignment_code"`
	AssignmentName string `db:"assignment_name"`
	ResourceType   string `db:"resource_type"`
	ResourceName   string `db:"resource_name"`
	Link           string `db:"link"`
}

// Resource is one helpful link or material attached to an assignment.
type Resource struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// ResourceEntry is the catalog view of one assignment code within a course
// scope: its display name, accumulated resources, and the canonical deadline
// once attached. Deadline stays nil when no deadline record matches.
type ResourceEntry struct {
	CourseScope    string
	AssignmentCode string
	AssignmentName string
	Resources      []Resource
	Deadline       *time.Time
}

// EligibilityResult captures one assignment that passed the eligibility rule
// for one student on one run.
type EligibilityResult struct {
	AssignmentCode         string     `json:"assignment_code"`
	AssignmentName         string     `json:"assignment_name"`
	BaseDeadline           *time.Time `json:"base_deadline"`
	PersonalDeadline       time.Time  `json:"personal_deadline"`
	OffsetDays             int        `json:"offset_days"`
	NotificationWindowDays int        `json:"notification_window_days"`
	Resources              []Resource `json:"resources,omitempty"`
}

// StudentIdentity is the minimal student reference carried on a bundle.
type StudentIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReminderBundle is everything delivery needs for one student: the composed
// message, the eligible assignments behind it, and the channels to send on.
type ReminderBundle struct {
	Student     StudentIdentity     `json:"student"`
	Channels    []Channel           `json:"channels"`
	Assignments []EligibilityResult `json:"assignments"`
	Message     string              `json:"message"`
}

// RunSummary is the persisted outcome of one reminder run.
type RunSummary struct {
	RunID           string    `json:"run_id"`
	StartedAt       time.Time `json:"started_at"`
	ReferenceDate   string    `json:"reference_date"`
	StudentsSeen    int       `json:"students_seen"`
	StudentsOptedIn int       `json:"students_opted_in"`
	BundlesBuilt    int       `json:"bundles_built"`
	EligibleEntries int       `json:"eligible_entries"`
	FailureReason   string    `json:"failure_reason,omitempty"`
}
