package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// Application is a talent's submission against a job. At most one exists
// per (job_id, talent_id).
type Application struct {
	ID                 string     `json:"id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	JobID              string     `json:"job_id"`
	TalentID           string     `json:"talent_id"`
	CoverLetter        *string    `json:"cover_letter"`
	Status             string     `json:"status"`
	TalentResumeURL    *string    `json:"talent_resume_url"`
	ClientNotes        *string    `json:"client_notes"`
	InterviewScheduled *time.Time `json:"interview_scheduled"`

	// Embedded relations for list responses
	Job    *Job             `json:"jobs,omitempty"`
	Talent *ApplicantTalent `json:"talents,omitempty"`
}

// ApplicantTalent is the talent row with the applicant's public profile bits.
type ApplicantTalent struct {
	Talent
	Profiles *ApplicantProfile `json:"profiles"`
}

type ApplicantProfile struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// ApplicationFilter scopes a listing. ClientID restricts to jobs owned by
// that client, TalentID to that talent's own applications.
type ApplicationFilter struct {
	ClientID string
	TalentID string
	JobID    string
	Status   string
}

type ApplyInput struct {
	JobID       string
	CoverLetter *string
	ResumeURL   *string
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	CheckExists(ctx context.Context, jobID, talentID string) (bool, error)
	Fetch(ctx context.Context, filter ApplicationFilter, limit, offset int) ([]Application, int64, error)
	UpdateStatus(ctx context.Context, id, status string, notes *string) (*Application, error)
	ScheduleInterview(ctx context.Context, id string, at time.Time) (*Application, error)
}

type ApplicationUsecase interface {
	// Talent operations
	ApplyToJob(ctx context.Context, talentID string, input ApplyInput) (*Application, error)

	// Shared, scoped by account type
	ListApplications(ctx context.Context, userID, accountType string, filter ApplicationFilter, page PageRequest) ([]Application, Pagination, error)

	// Client operations
	UpdateApplicationStatus(ctx context.Context, clientID, applicationID, status string, notes *string) (*Application, error)
	ScheduleInterview(ctx context.Context, clientID, applicationID string, at time.Time) (*Application, error)
}
