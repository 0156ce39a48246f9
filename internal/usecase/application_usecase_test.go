package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/internal/usecase"
	"talent-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()
	input := domain.ApplyInput{JobID: "j1", CoverLetter: strPtr("hi")}

	t.Run("Should create pending application and bump the counter", func(t *testing.T) {
		apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(apps, jobs)
		jobs.On("GetByID", ctx, "j1").Return(&domain.Job{ID: "j1", Status: domain.JobStatusActive}, nil)
		apps.On("CheckExists", ctx, "j1", "t1").Return(false, nil)
		apps.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.JobID == "j1" && a.TalentID == "t1" && a.Status == domain.ApplicationStatusPending
		})).Return(nil)
		jobs.On("IncrementApplicationCount", ctx, "j1").Return(nil)

		app, err := uc.ApplyToJob(ctx, "t1", input)
		require.NoError(t, err)
		assert.Equal(t, "hi", *app.CoverLetter)
		jobs.AssertCalled(t, "IncrementApplicationCount", ctx, "j1")
	})

	t.Run("Should require a job id", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		_, err := uc.ApplyToJob(ctx, "t1", domain.ApplyInput{})
		assert.Equal(t, http.StatusBadRequest, apperror.Code(err))
		assert.Equal(t, "Job ID is required", err.Error())
	})

	for _, status := range []string{domain.JobStatusDraft, domain.JobStatusClosed, domain.JobStatusFilled} {
		t.Run("Should refuse "+status+" jobs", func(t *testing.T) {
			apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
			uc := usecase.NewApplicationUsecase(apps, jobs)
			jobs.On("GetByID", ctx, "j1").Return(&domain.Job{ID: "j1", Status: status}, nil)

			_, err := uc.ApplyToJob(ctx, "t1", input)
			assert.Equal(t, http.StatusNotFound, apperror.Code(err))
			assert.Equal(t, "Job not found or not active", err.Error())
			apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Should refuse a second application", func(t *testing.T) {
		apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(apps, jobs)
		jobs.On("GetByID", ctx, "j1").Return(&domain.Job{ID: "j1", Status: domain.JobStatusActive}, nil)
		apps.On("CheckExists", ctx, "j1", "t1").Return(true, nil)

		_, err := uc.ApplyToJob(ctx, "t1", input)
		assert.Equal(t, http.StatusBadRequest, apperror.Code(err))
		assert.Equal(t, "Already applied to this job", err.Error())
		jobs.AssertNotCalled(t, "IncrementApplicationCount", mock.Anything, mock.Anything)
	})

	t.Run("Should map unique violation to already applied", func(t *testing.T) {
		apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(apps, jobs)
		jobs.On("GetByID", ctx, "j1").Return(&domain.Job{ID: "j1", Status: domain.JobStatusActive}, nil)
		apps.On("CheckExists", ctx, "j1", "t1").Return(false, nil)
		apps.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.ApplyToJob(ctx, "t1", input)
		assert.Equal(t, "Already applied to this job", err.Error())
	})

	t.Run("Should succeed even if the counter update fails", func(t *testing.T) {
		apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(apps, jobs)
		jobs.On("GetByID", ctx, "j1").Return(&domain.Job{ID: "j1", Status: domain.JobStatusActive}, nil)
		apps.On("CheckExists", ctx, "j1", "t1").Return(false, nil)
		apps.On("Create", ctx, mock.Anything).Return(nil)
		jobs.On("IncrementApplicationCount", ctx, "j1").Return(errors.New("down"))

		_, err := uc.ApplyToJob(ctx, "t1", input)
		assert.NoError(t, err)
	})
}

func TestListApplicationsScope(t *testing.T) {
	ctx := context.Background()

	t.Run("Client sees applications to own jobs", func(t *testing.T) {
		apps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo))
		expected := domain.ApplicationFilter{ClientID: "c1", Status: "pending"}
		apps.On("Fetch", ctx, expected, 10, 0).Return([]domain.Application{{ID: "a1"}}, int64(1), nil)

		list, p, err := uc.ListApplications(ctx, "c1", domain.AccountTypeClient,
			domain.ApplicationFilter{TalentID: "spoofed", Status: "pending"}, domain.PageRequest{})
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, p.TotalPages)
	})

	t.Run("Talent sees own applications", func(t *testing.T) {
		apps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo))
		expected := domain.ApplicationFilter{TalentID: "t1"}
		apps.On("Fetch", ctx, expected, 5, 5).Return([]domain.Application{}, int64(6), nil)

		_, p, err := uc.ListApplications(ctx, "t1", domain.AccountTypeTalent,
			domain.ApplicationFilter{ClientID: "spoofed"}, domain.PageRequest{Page: 2, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 2, p.TotalPages)
	})

	t.Run("Other account types are forbidden", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		_, _, err := uc.ListApplications(ctx, "a1", domain.AccountTypeAdmin, domain.ApplicationFilter{}, domain.PageRequest{})
		assert.Equal(t, http.StatusForbidden, apperror.Code(err))
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	owned := &domain.Application{ID: "a1", JobID: "j1", Job: &domain.Job{ID: "j1", ClientID: "c1"}}

	t.Run("Hiring fills the job", func(t *testing.T) {
		apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(apps, jobs)
		notes := strPtr("great fit")
		apps.On("GetByID", ctx, "a1").Return(owned, nil)
		apps.On("UpdateStatus", ctx, "a1", "hired", notes).Return(&domain.Application{ID: "a1", Status: "hired", ClientNotes: notes}, nil)
		jobs.On("UpdateStatus", ctx, "j1", domain.JobStatusFilled).Return(nil)

		app, err := uc.UpdateApplicationStatus(ctx, "c1", "a1", "hired", notes)
		require.NoError(t, err)
		assert.Equal(t, "hired", app.Status)
		jobs.AssertCalled(t, "UpdateStatus", ctx, "j1", domain.JobStatusFilled)
	})

	t.Run("Other statuses leave the job alone", func(t *testing.T) {
		apps, jobs := new(MockApplicationRepo), new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(apps, jobs)
		apps.On("GetByID", ctx, "a1").Return(owned, nil)
		apps.On("UpdateStatus", ctx, "a1", "reviewed", (*string)(nil)).Return(&domain.Application{ID: "a1", Status: "reviewed"}, nil)

		_, err := uc.UpdateApplicationStatus(ctx, "c1", "a1", "reviewed", nil)
		require.NoError(t, err)
		jobs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Foreign and missing applications are indistinguishable", func(t *testing.T) {
		apps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo))
		apps.On("GetByID", ctx, "a1").Return(owned, nil)
		apps.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		_, errForeign := uc.UpdateApplicationStatus(ctx, "c2", "a1", "reviewed", nil)
		_, errMissing := uc.UpdateApplicationStatus(ctx, "c2", "missing", "reviewed", nil)
		assert.Equal(t, http.StatusNotFound, apperror.Code(errForeign))
		assert.Equal(t, errMissing.Error(), errForeign.Error())
		assert.Equal(t, "Application not found or unauthorized", errForeign.Error())
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		_, err := uc.UpdateApplicationStatus(ctx, "c1", "a1", "archived", nil)
		assert.Equal(t, http.StatusBadRequest, apperror.Code(err))
	})
}

func TestScheduleInterview(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 11, 2, 15, 0, 0, 0, time.UTC)
	owned := &domain.Application{ID: "a1", JobID: "j1", Job: &domain.Job{ID: "j1", ClientID: "c1"}}

	t.Run("Owner schedules and application is shortlisted", func(t *testing.T) {
		apps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo))
		apps.On("GetByID", ctx, "a1").Return(owned, nil)
		apps.On("ScheduleInterview", ctx, "a1", at).Return(&domain.Application{ID: "a1", Status: "shortlisted", InterviewScheduled: &at}, nil)

		app, err := uc.ScheduleInterview(ctx, "c1", "a1", at)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, app.Status)
		assert.True(t, app.InterviewScheduled.Equal(at))
	})

	t.Run("Non-owner gets not found", func(t *testing.T) {
		apps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(apps, new(MockJobRepo))
		apps.On("GetByID", ctx, "a1").Return(owned, nil)

		_, err := uc.ScheduleInterview(ctx, "c2", "a1", at)
		assert.Equal(t, http.StatusNotFound, apperror.Code(err))
	})
}
