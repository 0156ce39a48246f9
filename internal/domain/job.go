package domain

import (
	"context"
	"time"
)

// Job status values
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusFilled = "filled"
)

const DefaultSalaryCurrency = "USD"

type Job struct {
	ID                  string     `json:"id"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ClientID            string     `json:"client_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	SkillsRequired      []string   `json:"skills_required"`
	JobType             *string    `json:"job_type"`
	ExperienceLevel     *string    `json:"experience_level"`
	Location            *string    `json:"location"`
	SalaryMin           *float64   `json:"salary_min"`
	SalaryMax           *float64   `json:"salary_max"`
	SalaryCurrency      string     `json:"salary_currency"`
	Remote              bool       `json:"remote"`
	Status              string     `json:"status"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CategoryID          *string    `json:"category_id"`
	Perks               []string   `json:"perks"`
	ApplicationCount    int        `json:"application_count"`
	ViewCount           int        `json:"view_count"`
	IsFeatured          bool       `json:"is_featured"`
}

// JobFilter narrows the public job listing. Zero values mean "no filter".
type JobFilter struct {
	Search          string
	Category        string
	JobType         string
	ExperienceLevel string
	Location        string
	Remote          *bool
	MinSalary       *float64
	MaxSalary       *float64
}

// JobUpdate is a partial update from the owning client. Counters, owner
// and featured flag are not client-editable.
type JobUpdate struct {
	Title               *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description         *string    `json:"description" binding:"omitempty,min=1"`
	SkillsRequired      *[]string  `json:"skills_required"`
	JobType             *string    `json:"job_type" binding:"omitempty,oneof=full-time part-time contract freelance"`
	ExperienceLevel     *string    `json:"experience_level" binding:"omitempty,oneof=entry mid senior lead"`
	Location            *string    `json:"location" binding:"omitempty,max=200"`
	SalaryMin           *float64   `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max" binding:"omitempty,gte=0"`
	SalaryCurrency      *string    `json:"salary_currency" binding:"omitempty,len=3"`
	Remote              *bool      `json:"remote"`
	Status              *string    `json:"status" binding:"omitempty,oneof=draft active closed filled"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CategoryID          *string    `json:"category_id"`
	Perks               *[]string  `json:"perks"`
}

// IsEmpty reports whether the update sets no column at all.
func (u *JobUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.SkillsRequired == nil &&
		u.JobType == nil && u.ExperienceLevel == nil && u.Location == nil &&
		u.SalaryMin == nil && u.SalaryMax == nil && u.SalaryCurrency == nil &&
		u.Remote == nil && u.Status == nil && u.ApplicationDeadline == nil &&
		u.CategoryID == nil && u.Perks == nil
}

// JobDetails is a job plus the client that owns it.
type JobDetails struct {
	Job    *Job    `json:"job"`
	Client *Client `json:"client"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	FetchByClientID(ctx context.Context, clientID, status string) ([]Job, error)
	Update(ctx context.Context, id string, update *JobUpdate) (*Job, error)
	UpdateStatus(ctx context.Context, id, status string) error
	IncrementViewCount(ctx context.Context, id string) error
	IncrementApplicationCount(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, clientID string, job *Job) error
	ListJobs(ctx context.Context, filter JobFilter, page PageRequest) ([]Job, Pagination, error)
	GetJobDetails(ctx context.Context, id string) (*JobDetails, error)
	ListClientJobs(ctx context.Context, clientID, status string) ([]Job, error)
	UpdateJob(ctx context.Context, clientID, id string, update *JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, clientID, id string) error
}
