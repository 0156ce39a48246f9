package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"talent-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, job_id, talent_id, cover_letter, status, talent_resume_url,
	client_notes, interview_scheduled, created_at, updated_at`

// applicantTalentJSON renders the applicant's talent row with the public
// profile fields nested under "profiles". NULL when the talent row is missing.
const applicantTalentJSON = `to_jsonb(t) || jsonb_build_object('profiles',
	jsonb_build_object('full_name', p.full_name, 'avatar_url', p.avatar_url))`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// prefixColumns qualifies a comma separated column list with a table alias.
func prefixColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func applicationScanTargets(app *domain.Application) []interface{} {
	return []interface{}{
		&app.ID, &app.JobID, &app.TalentID, &app.CoverLetter, &app.Status, &app.TalentResumeURL,
		&app.ClientNotes, &app.InterviewScheduled, &app.CreatedAt, &app.UpdatedAt,
	}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(applicationScanTargets(&app)...); err != nil {
		return nil, mapError(err)
	}
	return &app, nil
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	query := `
		INSERT INTO applications (job_id, talent_id, cover_letter, status, talent_resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		app.JobID, app.TalentID, app.CoverLetter, app.Status, app.TalentResumeURL, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	return mapError(err)
}

// GetByID retrieves an application together with its job, used for
// ownership checks.
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1`,
		prefixColumns(applicationColumns, "a"), prefixColumns(jobColumns, "j"))

	var app domain.Application
	var job domain.Job
	jobTargets, finish := jobScanTargets(&job)
	targets := append(applicationScanTargets(&app), jobTargets...)
	if err := r.db.QueryRow(ctx, query, id).Scan(targets...); err != nil {
		return nil, mapError(err)
	}
	finish()
	app.Job = &job
	return &app, nil
}

func (r *applicationRepo) CheckExists(ctx context.Context, jobID, talentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND talent_id = $2)`
	err := r.db.QueryRow(ctx, query, jobID, talentID).Scan(&exists)
	return exists, err
}

// Fetch lists applications newest first with the job and the applicant
// embedded. ClientID scopes to jobs owned by that client.
func (r *applicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	var where whereClause
	if filter.ClientID != "" {
		where.add("j.client_id = " + where.next(filter.ClientID))
	}
	if filter.TalentID != "" {
		where.add("a.talent_id = " + where.next(filter.TalentID))
	}
	if filter.JobID != "" {
		where.add("a.job_id = " + where.next(filter.JobID))
	}
	if filter.Status != "" {
		where.add("a.status = " + where.next(filter.Status))
	}

	from := `
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN talents t ON t.user_id = a.talent_id
		LEFT JOIN profiles p ON p.id = a.talent_id `

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+from+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append(where.args, limit, offset)
	query := fmt.Sprintf(`SELECT %s, %s, %s %s %s ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`,
		prefixColumns(applicationColumns, "a"), prefixColumns(jobColumns, "j"), applicantTalentJSON,
		from, where.String(), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		var job domain.Job
		var talent []byte
		jobTargets, finish := jobScanTargets(&job)
		targets := append(applicationScanTargets(&app), jobTargets...)
		targets = append(targets, &talent)
		if err := rows.Scan(targets...); err != nil {
			return nil, 0, err
		}
		finish()
		app.Job = &job
		if len(talent) > 0 {
			var applicant domain.ApplicantTalent
			if err := json.Unmarshal(talent, &applicant); err != nil {
				return nil, 0, err
			}
			app.Talent = &applicant
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// UpdateStatus sets the status and, when notes is non-nil, the client notes.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string, notes *string) (*domain.Application, error) {
	set := newSetClause(id)
	set.add("status", status)
	if notes != nil {
		set.add("client_notes", *notes)
	}
	set.add("updated_at", time.Now())

	query := `UPDATE applications SET ` + set.String() + ` WHERE id = $1 RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRow(ctx, query, set.args...))
}

// ScheduleInterview records the interview time and moves the application
// to shortlisted.
func (r *applicationRepo) ScheduleInterview(ctx context.Context, id string, at time.Time) (*domain.Application, error) {
	query := `UPDATE applications SET interview_scheduled = $2, status = $3, updated_at = $4
	          WHERE id = $1 RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRow(ctx, query, id, at, domain.ApplicationStatusShortlisted, time.Now()))
}
