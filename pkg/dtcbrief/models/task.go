package models

import (
	"strings"
	"time"
)

// DateLayout is the MM/DD/YYYY layout ClickUp expects in CSV imports.
const DateLayout = "01/02/2006"

// Date is a calendar day in DateLayout form. The zero value means "no date".
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// Time parses the date at midnight UTC.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// AddDays shifts the date by n days. Unparseable or zero dates return "".
func (d Date) AddDays(n int) Date {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return NewDate(t.AddDate(0, 0, n))
}

// Weekday returns the English day name, or "" for a zero date.
func (d Date) Weekday() string {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// Priority is a ClickUp task priority.
type Priority string

const (
	PriorityUrgent Priority = "Urgent"
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// StatusOpen is the status every converted task starts in.
const StatusOpen = "Open"

// TaskKind identifies which brief a task was produced from.
type TaskKind string

const (
	KindEmail  TaskKind = "email"
	KindSMS    TaskKind = "sms"
	KindLaunch TaskKind = "launch"
)

// Source locates the sheet cell a task was produced from.
type Source struct {
	Sheet string `json:"sheet" yaml:"sheet"`
	Cell  string `json:"cell" yaml:"cell"`
}

// TaskRecord is one task destined for ClickUp.
type TaskRecord struct {
	// Name is the task title.
	Name string `json:"name" yaml:"name"`
	// Description is the multi-line task body.
	Description string `json:"description" yaml:"description"`
	// DueDate is required.
	DueDate Date `json:"due_date" yaml:"due_date"`
	// StartDate is the send date when known.
	StartDate Date `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	// Priority is one of Urgent, High, Normal, Low.
	Priority Priority `json:"priority" yaml:"priority"`
	// Status is the initial ClickUp status.
	Status string `json:"status" yaml:"status"`
	// Tags are applied in order.
	Tags []string `json:"tags" yaml:"tags"`
	// Assignee is an optional owner (ClickUp username or email).
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	// Kind is the brief type the task came from.
	Kind TaskKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Source is the originating sheet cell; not part of the CSV artifact.
	Source Source `json:"source" yaml:"source"`
}
