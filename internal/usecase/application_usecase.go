package usecase

import (
	"context"
	"errors"
	"time"

	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/logger"
)

const (
	msgJobNotActive        = "Job not found or not active"
	msgAlreadyApplied      = "Already applied to this job"
	msgApplicationNotOwned = "Application not found or unauthorized"
	msgInvalidAppStatus    = "status must be one of: pending reviewed shortlisted rejected hired"
)

var validApplicationStatuses = map[string]bool{
	domain.ApplicationStatusPending:     true,
	domain.ApplicationStatusReviewed:    true,
	domain.ApplicationStatusShortlisted: true,
	domain.ApplicationStatusRejected:    true,
	domain.ApplicationStatusHired:       true,
}

type applicationUsecase struct {
	appRepo domain.ApplicationRepository
	jobRepo domain.JobRepository
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo: appRepo,
		jobRepo: jobRepo,
	}
}

// ApplyToJob submits a pending application for an active job. The
// application counter is bumped afterwards on a best effort basis.
func (u *applicationUsecase) ApplyToJob(ctx context.Context, talentID string, input domain.ApplyInput) (*domain.Application, error) {
	if input.JobID == "" {
		return nil, apperror.BadRequest("Job ID is required")
	}

	job, err := u.jobRepo.GetByID(ctx, input.JobID)
	if err != nil || job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound(msgJobNotActive)
	}

	exists, err := u.appRepo.CheckExists(ctx, job.ID, talentID)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if exists {
		return nil, apperror.BadRequest(msgAlreadyApplied)
	}

	app := &domain.Application{
		JobID:           job.ID,
		TalentID:        talentID,
		CoverLetter:     input.CoverLetter,
		TalentResumeURL: input.ResumeURL,
		Status:          domain.ApplicationStatusPending,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		// lost the race against a concurrent submission
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.BadRequest(msgAlreadyApplied)
		}
		return nil, apperror.Store(err)
	}

	if err := u.jobRepo.IncrementApplicationCount(ctx, job.ID); err != nil {
		logger.Log.Warn("Failed to increment application count", "job_id", job.ID, "error", err)
	}

	return app, nil
}

// ListApplications scopes the listing by the caller's account type:
// clients see applications to their jobs, talents see their own.
func (u *applicationUsecase) ListApplications(ctx context.Context, userID, accountType string, filter domain.ApplicationFilter, page domain.PageRequest) ([]domain.Application, domain.Pagination, error) {
	switch accountType {
	case domain.AccountTypeClient:
		filter.ClientID = userID
		filter.TalentID = ""
	case domain.AccountTypeTalent:
		filter.TalentID = userID
		filter.ClientID = ""
	default:
		return nil, domain.Pagination{}, apperror.Forbidden("Forbidden")
	}

	page = domain.NewPageRequest(page.Page, page.Limit)
	apps, total, err := u.appRepo.Fetch(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, domain.Pagination{}, apperror.Store(err)
	}
	return apps, domain.NewPagination(total, page), nil
}

// UpdateApplicationStatus moves an application owned through its job by
// clientID. Hiring also marks the job filled.
func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, clientID, applicationID, status string, notes *string) (*domain.Application, error) {
	if !validApplicationStatuses[status] {
		return nil, apperror.BadRequest(msgInvalidAppStatus)
	}

	existing, err := u.validateApplicationOwnership(ctx, clientID, applicationID)
	if err != nil {
		return nil, err
	}

	app, err := u.appRepo.UpdateStatus(ctx, applicationID, status, notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgApplicationNotOwned)
		}
		return nil, apperror.Store(err)
	}

	if status == domain.ApplicationStatusHired {
		if err := u.jobRepo.UpdateStatus(ctx, existing.JobID, domain.JobStatusFilled); err != nil {
			logger.Log.Warn("Failed to mark job filled", "job_id", existing.JobID, "error", err)
		}
	}

	return app, nil
}

// ScheduleInterview records the interview time and shortlists the application.
func (u *applicationUsecase) ScheduleInterview(ctx context.Context, clientID, applicationID string, at time.Time) (*domain.Application, error) {
	if at.IsZero() {
		return nil, apperror.BadRequest("interviewDate is required")
	}

	if _, err := u.validateApplicationOwnership(ctx, clientID, applicationID); err != nil {
		return nil, err
	}

	app, err := u.appRepo.ScheduleInterview(ctx, applicationID, at)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgApplicationNotOwned)
		}
		return nil, apperror.Store(err)
	}
	return app, nil
}

func (u *applicationUsecase) validateApplicationOwnership(ctx context.Context, clientID, applicationID string) (*domain.Application, error) {
	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgApplicationNotOwned)
		}
		return nil, apperror.Store(err)
	}
	if app.Job == nil || app.Job.ClientID != clientID {
		return nil, apperror.NotFound(msgApplicationNotOwned)
	}
	return app, nil
}
