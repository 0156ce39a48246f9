package v1_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"talent-marketplace-backend/internal/domain"

	"github.com/google/uuid"
)

// memStore backs every repository interface with maps so the HTTP layer can
// be exercised end to end without a database.
type memStore struct {
	mu       sync.Mutex
	now      time.Time
	profiles map[string]*domain.Profile
	talents  map[string]*domain.Talent
	clients  map[string]*domain.Client
	jobs     map[string]*domain.Job
	apps     map[string]*domain.Application
}

func newMemStore() *memStore {
	return &memStore{
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		profiles: map[string]*domain.Profile{},
		talents:  map[string]*domain.Talent{},
		clients:  map[string]*domain.Client{},
		jobs:     map[string]*domain.Job{},
		apps:     map[string]*domain.Application{},
	}
}

// tick hands out strictly increasing timestamps so newest-first ordering is
// deterministic.
func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

type profileRepo struct{ *memStore }
type talentRepo struct{ *memStore }
type clientRepo struct{ *memStore }
type jobRepo struct{ *memStore }
type applicationRepo struct{ *memStore }

func (r profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; ok {
		return domain.ErrDuplicate
	}
	p.CreatedAt, p.UpdatedAt = r.tick(), r.now
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r profileRepo) Update(ctx context.Context, id string, u *domain.ProfileUpdate) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.FullName != nil {
		p.FullName = u.FullName
	}
	if u.AvatarURL != nil {
		p.AvatarURL = u.AvatarURL
	}
	if u.ThemePreference != nil {
		p.ThemePreference = *u.ThemePreference
	}
	if u.OnboardingStep != nil {
		p.OnboardingStep = *u.OnboardingStep
	}
	if u.OnboardingCompleted != nil {
		p.OnboardingCompleted = *u.OnboardingCompleted
	}
	p.UpdatedAt = r.tick()
	cp := *p
	return &cp, nil
}

func (r profileRepo) TouchLastActive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		now := r.tick()
		p.LastActive = &now
	}
	return nil
}

func (r talentRepo) Create(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.talents[userID] = &domain.Talent{ID: uuid.NewString(), UserID: userID, Skills: []string{}, PreferredJobTypes: []string{}}
	return nil
}

func (r talentRepo) GetByUserID(ctx context.Context, userID string) (*domain.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.talents[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r talentRepo) Update(ctx context.Context, userID string, u *domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.talents[userID]
	if !ok {
		return nil
	}
	if u.Title != nil {
		t.Title = u.Title
	}
	if u.Bio != nil {
		t.Bio = u.Bio
	}
	if u.Skills != nil {
		t.Skills = *u.Skills
	}
	if u.Location != nil {
		t.Location = u.Location
	}
	return nil
}

func (r clientRepo) Create(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[userID] = &domain.Client{ID: uuid.NewString(), UserID: userID}
	return nil
}

func (r clientRepo) GetByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r clientRepo) Update(ctx context.Context, userID string, u *domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[userID]
	if !ok {
		return nil
	}
	if u.CompanyName != nil {
		c.CompanyName = u.CompanyName
	}
	if u.Location != nil {
		c.Location = u.Location
	}
	return nil
}

func (r jobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = uuid.NewString()
	job.CreatedAt, job.UpdatedAt = r.tick(), r.now
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r jobRepo) matches(j *domain.Job, f domain.JobFilter) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(j.Title), s) && !strings.Contains(strings.ToLower(j.Description), s) {
			return false
		}
	}
	if f.JobType != "" && (j.JobType == nil || *j.JobType != f.JobType) {
		return false
	}
	if f.Remote != nil && j.Remote != *f.Remote {
		return false
	}
	if f.MinSalary != nil && (j.SalaryMin == nil || *j.SalaryMin < *f.MinSalary) {
		return false
	}
	if f.MaxSalary != nil && (j.SalaryMax == nil || *j.SalaryMax > *f.MaxSalary) {
		return false
	}
	return true
}

func (r jobRepo) sorted(keep func(*domain.Job) bool) []domain.Job {
	out := []domain.Job{}
	for _, j := range r.jobs {
		if keep(j) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (r jobRepo) Fetch(ctx context.Context, f domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(j *domain.Job) bool { return r.matches(j, f) })
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Job{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r jobRepo) FetchByClientID(ctx context.Context, clientID, status string) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(j *domain.Job) bool {
		return j.ClientID == clientID && (status == "" || j.Status == status)
	}), nil
}

func (r jobRepo) Update(ctx context.Context, id string, u *domain.JobUpdate) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = *u.Description
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.SalaryMin != nil {
		j.SalaryMin = u.SalaryMin
	}
	if u.SalaryMax != nil {
		j.SalaryMax = u.SalaryMax
	}
	if u.Remote != nil {
		j.Remote = *u.Remote
	}
	j.UpdatedAt = r.tick()
	cp := *j
	return &cp, nil
}

func (r jobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Status = status
	return nil
}

func (r jobRepo) IncrementViewCount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		j.ViewCount++
	}
	return nil
}

func (r jobRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		j.ApplicationCount++
	}
	return nil
}

func (r jobRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.TalentID == app.TalentID {
			return domain.ErrDuplicate
		}
	}
	app.ID = uuid.NewString()
	app.CreatedAt, app.UpdatedAt = r.tick(), r.now
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

// withJob copies the application and attaches its job, like the SQL join.
func (r applicationRepo) withJob(a *domain.Application) *domain.Application {
	cp := *a
	if j, ok := r.jobs[a.JobID]; ok {
		job := *j
		cp.Job = &job
	}
	return &cp
}

func (r applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.withJob(a), nil
}

func (r applicationRepo) CheckExists(ctx context.Context, jobID, talentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == jobID && a.TalentID == talentID {
			return true, nil
		}
	}
	return false, nil
}

func (r applicationRepo) Fetch(ctx context.Context, f domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := []domain.Application{}
	for _, a := range r.apps {
		full := r.withJob(a)
		if f.ClientID != "" && (full.Job == nil || full.Job.ClientID != f.ClientID) {
			continue
		}
		if f.TalentID != "" && a.TalentID != f.TalentID {
			continue
		}
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if t, ok := r.talents[a.TalentID]; ok {
			applicant := &domain.ApplicantTalent{Talent: *t}
			if p, ok := r.profiles[a.TalentID]; ok {
				applicant.Profiles = &domain.ApplicantProfile{FullName: p.FullName, AvatarURL: p.AvatarURL}
			}
			full.Talent = applicant
		}
		all = append(all, *full)
	}
	sort.Slice(all, func(a, b int) bool { return all[a].CreatedAt.After(all[b].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Application{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r applicationRepo) UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Status = status
	if notes != nil {
		a.ClientNotes = notes
	}
	a.UpdatedAt = r.tick()
	cp := *a
	return &cp, nil
}

func (r applicationRepo) ScheduleInterview(ctx context.Context, id string, at time.Time) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.InterviewScheduled = &at
	a.Status = domain.ApplicationStatusShortlisted
	a.UpdatedAt = r.tick()
	cp := *a
	return &cp, nil
}

var errBadCredentials = errors.New("invalid login credentials")

// fakeProvider stands in for the hosted auth service.
type fakeProvider struct {
	mu    sync.Mutex
	users map[string]struct{ id, password string }
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{users: map[string]struct{ id, password string }{}}
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password string) (*domain.AuthIdentity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(password) < 6 {
		return nil, errors.New("Password should be at least 6 characters")
	}
	id := uuid.NewString()
	p.users[email] = struct{ id, password string }{id, password}
	return &domain.AuthIdentity{ID: id, Email: email}, nil
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthIdentity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.users[email]
	if !ok || u.password != password {
		return nil, errBadCredentials
	}
	return &domain.AuthIdentity{ID: u.id, Email: email}, nil
}

// fakeGuard blocks an email after max recorded failures.
type fakeGuard struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func newFakeGuard(max int) *fakeGuard {
	return &fakeGuard{max: max, failures: map[string]int{}}
}

func (g *fakeGuard) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failures[email] >= g.max, nil
}

func (g *fakeGuard) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[email]++
	return g.failures[email] >= g.max, g.max - g.failures[email], nil
}

func (g *fakeGuard) ClearAttempts(ctx context.Context, email, ip string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.failures, email)
	return nil
}
