package ports

import "context"

// ExternalListing is one element of the external job feed, decoded but not
// yet normalised. Zero values mean the field was absent.
type ExternalListing struct {
	Title            string
	OrgDescription   string
	OrgSpecialties   []string
	SalaryMinValue   float64
	Seniority        string
	LocationsDerived []string
	EmploymentType   []string
	Organization     string
	OrganizationLogo string
	URL              string
}

// JobFeed pulls listings from the external job-search API.
// It returns domain.ErrInvalidFeed when the response is not a JSON array and
// domain.ErrUpstream when the API cannot be reached.
type JobFeed interface {
	FetchListings(ctx context.Context) ([]ExternalListing, error)
}

// IngestLock serialises ingestion runs across instances.
type IngestLock interface {
	// Acquire returns a release func, or ok=false when a run is in progress.
	Acquire(ctx context.Context) (release func(), ok bool, err error)
}
