package model

import "time"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusSubmitted  ProjectStatus = "Submitted"
	StatusInProgress ProjectStatus = "In Progress"
	StatusInReview   ProjectStatus = "In Review"
	StatusCompleted  ProjectStatus = "Completed"
)

// ProjectStatuses lists every status in lifecycle order.
var ProjectStatuses = []ProjectStatus{StatusSubmitted, StatusInProgress, StatusInReview, StatusCompleted}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ProjectServices are the service lines a project can be filed under.
var ProjectServices = []string{
	"Engineering Design",
	"Software Development",
	"Technical Documentation",
	"UI / UX Design",
	"Data & AI Solutions",
	"Staffing",
	"Other",
}

// ValidProjectService reports whether s is a known service line.
func ValidProjectService(s string) bool {
	for _, v := range ProjectServices {
		if s == v {
			return true
		}
	}
	return false
}

// PhaseStatus is the state of one timeline phase.
type PhaseStatus string

const (
	PhaseCompleted  PhaseStatus = "completed"
	PhaseInProgress PhaseStatus = "in-progress"
	PhasePending    PhaseStatus = "pending"
)

// Valid reports whether s is a known phase status.
func (s PhaseStatus) Valid() bool {
	switch s {
	case PhaseCompleted, PhaseInProgress, PhasePending:
		return true
	}
	return false
}

// TimelinePhase is one milestone in a project's planned timeline.
type TimelinePhase struct {
	Phase  string      `json:"phase"`
	Date   time.Time   `json:"date"`
	Status PhaseStatus `json:"status"`
}

// ProjectUpdate is an entry in a project's append-only activity log.
type ProjectUpdate struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
}

// Project is a client's work request. ClientID is always the owning account.
type Project struct {
	ID                 string          `json:"id"`
	ClientID           string          `json:"clientId"`
	Name               string          `json:"name"`
	Service            string          `json:"service"`
	Description        string          `json:"description"`
	Status             ProjectStatus   `json:"status"`
	Progress           int             `json:"progress"`
	SubmissionDate     time.Time       `json:"submissionDate"`
	ExpectedCompletion time.Time       `json:"expectedCompletion"`
	Timeline           []TimelinePhase `json:"timeline"`
	Updates            []ProjectUpdate `json:"updates"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
