package postgres

import (
	"context"
	"fmt"
	"time"

	"talent-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, client_id, title, description, skills_required, job_type, experience_level,
	location, salary_min, salary_max, salary_currency, remote, status, application_deadline,
	category_id, perks, application_count, view_count, is_featured, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// jobScanTargets returns scan destinations for jobColumns. The returned
// finish func copies the array columns into job after Scan.
func jobScanTargets(job *domain.Job) ([]interface{}, func()) {
	var skills, perks []string
	targets := []interface{}{
		&job.ID, &job.ClientID, &job.Title, &job.Description, pq.Array(&skills), &job.JobType, &job.ExperienceLevel,
		&job.Location, &job.SalaryMin, &job.SalaryMax, &job.SalaryCurrency, &job.Remote, &job.Status, &job.ApplicationDeadline,
		&job.CategoryID, pq.Array(&perks), &job.ApplicationCount, &job.ViewCount, &job.IsFeatured, &job.CreatedAt, &job.UpdatedAt,
	}
	return targets, func() {
		job.SkillsRequired = nonNil(skills)
		job.Perks = nonNil(perks)
	}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	targets, finish := jobScanTargets(&job)
	if err := row.Scan(targets...); err != nil {
		return nil, mapError(err)
	}
	finish()
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()
	jobs := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		targets, finish := jobScanTargets(&job)
		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		finish()
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	query := `INSERT INTO jobs (client_id, title, description, skills_required, job_type, experience_level,
	              location, salary_min, salary_max, salary_currency, remote, status, application_deadline,
	              category_id, perks, application_count, view_count, is_featured, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.ClientID, job.Title, job.Description, pq.Array(job.SkillsRequired), job.JobType, job.ExperienceLevel,
		job.Location, job.SalaryMin, job.SalaryMax, job.SalaryCurrency, job.Remote, job.Status, job.ApplicationDeadline,
		job.CategoryID, pq.Array(nonNil(job.Perks)), job.ApplicationCount, job.ViewCount, job.IsFeatured, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

// jobFilterWhere builds the public listing conditions. The search term is
// bound once and shared by both ILIKE operands.
func jobFilterWhere(filter domain.JobFilter) whereClause {
	var where whereClause

	if filter.Search != "" {
		p := where.next("%" + escapeLike(filter.Search) + "%")
		where.add(fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}
	if filter.Category != "" {
		where.add("category_id::text = " + where.next(filter.Category))
	}
	if filter.JobType != "" {
		where.add("job_type = " + where.next(filter.JobType))
	}
	if filter.ExperienceLevel != "" {
		where.add("experience_level = " + where.next(filter.ExperienceLevel))
	}
	if filter.Location != "" {
		where.add("location = " + where.next(filter.Location))
	}
	if filter.Remote != nil {
		where.add("remote = " + where.next(*filter.Remote))
	}
	if filter.MinSalary != nil {
		where.add("salary_min >= " + where.next(*filter.MinSalary))
	}
	if filter.MaxSalary != nil {
		where.add("salary_max <= " + where.next(*filter.MaxSalary))
	}
	return where
}

// Fetch returns one page of jobs matching filter, newest first, plus the
// total number of matches.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	where := jobFilterWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs ` + where.String()
	if err := r.db.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append(where.args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where.String(), len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FetchByClientID retrieves every job owned by clientID, optionally
// narrowed to one status.
func (r *jobRepo) FetchByClientID(ctx context.Context, clientID, status string) ([]domain.Job, error) {
	var where whereClause
	where.add("client_id = " + where.next(clientID))
	if status != "" {
		where.add("status = " + where.next(status))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs ` + where.String() + ` ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *jobRepo) Update(ctx context.Context, id string, u *domain.JobUpdate) (*domain.Job, error) {
	set := newSetClause(id)
	if u.Title != nil {
		set.add("title", *u.Title)
	}
	if u.Description != nil {
		set.add("description", *u.Description)
	}
	if u.SkillsRequired != nil {
		set.add("skills_required", pq.Array(*u.SkillsRequired))
	}
	if u.JobType != nil {
		set.add("job_type", *u.JobType)
	}
	if u.ExperienceLevel != nil {
		set.add("experience_level", *u.ExperienceLevel)
	}
	if u.Location != nil {
		set.add("location", *u.Location)
	}
	if u.SalaryMin != nil {
		set.add("salary_min", *u.SalaryMin)
	}
	if u.SalaryMax != nil {
		set.add("salary_max", *u.SalaryMax)
	}
	if u.SalaryCurrency != nil {
		set.add("salary_currency", *u.SalaryCurrency)
	}
	if u.Remote != nil {
		set.add("remote", *u.Remote)
	}
	if u.Status != nil {
		set.add("status", *u.Status)
	}
	if u.ApplicationDeadline != nil {
		set.add("application_deadline", *u.ApplicationDeadline)
	}
	if u.CategoryID != nil {
		set.add("category_id", *u.CategoryID)
	}
	if u.Perks != nil {
		set.add("perks", pq.Array(*u.Perks))
	}

	if set.empty() {
		return r.GetByID(ctx, id)
	}
	set.add("updated_at", time.Now())

	query := `UPDATE jobs SET ` + set.String() + ` WHERE id = $1 RETURNING ` + jobColumns
	return scanJob(r.db.QueryRow(ctx, query, set.args...))
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViewCount bumps the counter in place so concurrent readers do
// not lose updates.
func (r *jobRepo) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *jobRepo) IncrementApplicationCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, id)
	return err
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
