package usecase

import (
	"context"
	"errors"

	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/logger"
)

const msgJobNotOwned = "Job not found or unauthorized"

type jobUsecase struct {
	jobRepo    domain.JobRepository
	clientRepo domain.ClientRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, clientRepo domain.ClientRepository) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:    jobRepo,
		clientRepo: clientRepo,
	}
}

// CreateJob stores a new draft owned by clientID. Owner, status, counters
// and the featured flag are always set here, whatever the caller sent.
func (u *jobUsecase) CreateJob(ctx context.Context, clientID string, job *domain.Job) error {
	if job.Title == "" || job.Description == "" || job.SkillsRequired == nil {
		return apperror.BadRequest("Missing required fields")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return apperror.BadRequest("salary_min cannot be greater than salary_max")
	}

	job.ClientID = clientID
	job.Status = domain.JobStatusDraft
	job.ApplicationCount = 0
	job.ViewCount = 0
	job.IsFeatured = false
	if job.SalaryCurrency == "" {
		job.SalaryCurrency = domain.DefaultSalaryCurrency
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Store(err)
	}
	return nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter, page domain.PageRequest) ([]domain.Job, domain.Pagination, error) {
	page = domain.NewPageRequest(page.Page, page.Limit)

	jobs, total, err := u.jobRepo.Fetch(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, domain.Pagination{}, apperror.Store(err)
	}
	return jobs, domain.NewPagination(total, page), nil
}

// GetJobDetails returns the job and its owner's client row, and counts the
// view. A failed client lookup fails the request before the view is
// counted; the counter update itself is best effort.
func (u *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.JobDetails, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Store(err)
	}

	client, err := u.clientRepo.GetByUserID(ctx, job.ClientID)
	if err != nil {
		return nil, apperror.Store(err)
	}

	if err := u.jobRepo.IncrementViewCount(ctx, job.ID); err != nil {
		logger.Log.Warn("Failed to increment view count", "job_id", job.ID, "error", err)
	}

	return &domain.JobDetails{Job: job, Client: client}, nil
}

func (u *jobUsecase) ListClientJobs(ctx context.Context, clientID, status string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchByClientID(ctx, clientID, status)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return jobs, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, clientID, id string, update *domain.JobUpdate) (*domain.Job, error) {
	job, err := u.validateJobOwnership(ctx, clientID, id)
	if err != nil {
		return nil, err
	}

	if update.IsEmpty() {
		return job, nil
	}

	salaryMin, salaryMax := job.SalaryMin, job.SalaryMax
	if update.SalaryMin != nil {
		salaryMin = update.SalaryMin
	}
	if update.SalaryMax != nil {
		salaryMax = update.SalaryMax
	}
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return nil, apperror.BadRequest("salary_min cannot be greater than salary_max")
	}

	updated, err := u.jobRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgJobNotOwned)
		}
		return nil, apperror.Store(err)
	}
	return updated, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, clientID, id string) error {
	if _, err := u.validateJobOwnership(ctx, clientID, id); err != nil {
		return err
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(msgJobNotOwned)
		}
		return apperror.Store(err)
	}
	return nil
}

// validateJobOwnership loads the job and checks that clientID owns it. A
// missing job and a foreign job produce the same error.
func (u *jobUsecase) validateJobOwnership(ctx context.Context, clientID, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgJobNotOwned)
		}
		return nil, apperror.Store(err)
	}
	if job.ClientID != clientID {
		return nil, apperror.NotFound(msgJobNotOwned)
	}
	return job, nil
}
