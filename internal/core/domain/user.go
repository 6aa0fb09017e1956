package domain

import "time"

const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// ValidRole reports whether role is one of the supported account roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleRecruiter
}

// Profile is embedded in User and carries the seeker-facing details,
// including the saved-jobs relation.
type Profile struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	Resume             string   `json:"resume"`
	ResumeOriginalName string   `json:"resumeOriginalName"`
	ProfilePhoto       string   `json:"profilePhoto"`
	SavedJobs          []string `json:"savedJobs"`
	Company            string   `json:"company,omitempty"`
}

// User models an account holder.
type User struct {
	ID           string    `json:"_id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PhoneNumber  string    `json:"phoneNumber"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasSaved reports whether jobID is already in the user's saved list.
func (u *User) HasSaved(jobID string) bool {
	for _, id := range u.Profile.SavedJobs {
		if id == jobID {
			return true
		}
	}
	return false
}
