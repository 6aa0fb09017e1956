package domain

import (
	"strings"
	"time"
)

// ApplicationStatus is the recruiter's decision on an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus accepts the status in any letter case.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch st := ApplicationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return st, true
	}
	return "", false
}

// Application links an applicant to a job.
type Application struct {
	ID          string            `json:"_id"`
	JobID       string            `json:"job"`
	ApplicantID string            `json:"applicant"`
	Status      ApplicationStatus `json:"status"`
	Job         *Job              `json:"jobDetail,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

