package models

import (
	"time"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
)

// Valid reports whether s is one of the known lifecycle states.
func (s IssueStatus) Valid() bool {
	switch s {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// ValidStatusTransition is the status-change policy. Administrators may
// currently move an issue between any two known states, including backwards;
// only unknown status strings are rejected. A stricter (forward-only) state
// machine can be substituted here without touching callers.
func ValidStatusTransition(from, to IssueStatus) bool {
	return to.Valid()
}

// UrgencyLevel enum
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "Low"
	UrgencyMedium   UrgencyLevel = "Medium"
	UrgencyHigh     UrgencyLevel = "High"
	UrgencyCritical UrgencyLevel = "Critical"
)

// Issue represents a civic issue reported by a citizen.
//
// ReportedByID, ReportedBy and ReportedByName are captured from the caller's
// identity at creation time and never change afterwards. Urgency and
// UrgencyScore are derived by the urgency calculator and are not settable by
// the reporter.
type Issue struct {
	ID             string       `json:"id"`
	Type           string       `json:"type"`
	Location       string       `json:"location"`
	Latitude       *float64     `json:"latitude"`
	Longitude      *float64     `json:"longitude"`
	Description    string       `json:"description"`
	ImageURL       *string      `json:"imageUrl"`
	Status         IssueStatus  `json:"status"`
	Urgency        UrgencyLevel `json:"urgency"`
	UrgencyScore   int          `json:"urgencyScore"`
	ReportedByID   string       `json:"reportedById"`
	ReportedBy     string       `json:"reportedBy"`
	ReportedByName string       `json:"reportedByName"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// UrgencyBreakdown counts issues per urgency level.
type UrgencyBreakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// IssueStats aggregates the issues visible to a caller.
type IssueStats struct {
	Total               int              `json:"total"`
	Pending             int              `json:"pending"`
	InProgress          int              `json:"inProgress"`
	Resolved            int              `json:"resolved"`
	ByUrgency           UrgencyBreakdown `json:"byUrgency"`
	AverageUrgencyScore float64          `json:"averageUrgencyScore"`
	MaxUrgencyScore     float64          `json:"maxUrgencyScore"`
}
