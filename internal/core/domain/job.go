package domain

import "time"

// JobSource records how a posting entered the system.
type JobSource string

const (
	SourceManual   JobSource = "manual"
	SourceExternal JobSource = "external"
)

// Job is a posting. CreatedBy is empty for postings pulled from the
// external feed; CompanyID is empty when only CompanyName is known.
type Job struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	Salary          float64   `json:"salary"`
	Location        string    `json:"location"`
	JobType         string    `json:"jobType"`
	ExperienceLevel string    `json:"experienceLevel"`
	Position        int       `json:"position"`
	CompanyID       string    `json:"companyId,omitempty"`
	CompanyName     string    `json:"companyName,omitempty"`
	CompanyLogo     string    `json:"companyLogo,omitempty"`
	ApplyLink       string    `json:"applyLink,omitempty"`
	Source          JobSource `json:"source"`
	CreatedBy       string    `json:"createdBy,omitempty"`
	Applications    []string  `json:"applications"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// JobDetail is a Job with its references expanded. The outer Applications
// field shadows Job.Applications when encoded.
type JobDetail struct {
	Job
	Company      *Company      `json:"company,omitempty"`
	Applications []Application `json:"applications"`
}
