package domain

import "errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrJobIncomplete       = errors.New("something is missing")
	ErrJobAlreadySaved     = errors.New("job is already saved")
	ErrJobNotSaved         = errors.New("job is not saved")
	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("access forbidden")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrRoleMismatch        = errors.New("account doesn't exist with current role")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCompanyExists       = errors.New("company already exists")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("you have already applied for this job")
	ErrInvalidFeed         = errors.New("invalid API response")
	ErrUpstream            = errors.New("error fetching jobs")
	ErrIngestInProgress    = errors.New("job ingestion already in progress")
	ErrMediaNotFound       = errors.New("file not found")
	ErrUnsupportedMedia    = errors.New("unsupported file type")
)
