package postgres

import (
	"context"

	"talent-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const talentColumns = `id, user_id, title, bio, skills, hourly_rate, availability, years_of_experience,
	profile_completed, location, primary_role, linkedin_url, github_url, portfolio_url, resume_url,
	open_to_work, preferred_job_types, preferred_work_location`

type talentRepo struct {
	db *pgxpool.Pool
}

func NewTalentRepository(db *pgxpool.Pool) domain.TalentRepository {
	return &talentRepo{db: db}
}

func scanTalent(row pgx.Row, t *domain.Talent) error {
	var skills, jobTypes []string
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Bio, pq.Array(&skills), &t.HourlyRate, &t.Availability, &t.YearsOfExperience,
		&t.ProfileCompleted, &t.Location, &t.PrimaryRole, &t.LinkedinURL, &t.GithubURL, &t.PortfolioURL, &t.ResumeURL,
		&t.OpenToWork, pq.Array(&jobTypes), &t.PreferredWorkLocation,
	)
	if err != nil {
		return err
	}
	t.Skills = nonNil(skills)
	t.PreferredJobTypes = nonNil(jobTypes)
	return nil
}

// Create inserts the empty talent row made at registration.
func (r *talentRepo) Create(ctx context.Context, userID string) error {
	query := `INSERT INTO talents (user_id, profile_completed) VALUES ($1, FALSE)`
	_, err := r.db.Exec(ctx, query, userID)
	return mapError(err)
}

func (r *talentRepo) GetByUserID(ctx context.Context, userID string) (*domain.Talent, error) {
	query := `SELECT ` + talentColumns + ` FROM talents WHERE user_id = $1`
	var t domain.Talent
	if err := scanTalent(r.db.QueryRow(ctx, query, userID), &t); err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

// Update applies the talent-owned columns of u. An update that names none
// of them is a no-op.
func (r *talentRepo) Update(ctx context.Context, userID string, u *domain.ProfileUpdate) error {
	set := newSetClause(userID)
	if u.Title != nil {
		set.add("title", *u.Title)
	}
	if u.Bio != nil {
		set.add("bio", *u.Bio)
	}
	if u.Skills != nil {
		set.add("skills", pq.Array(*u.Skills))
	}
	if u.HourlyRate != nil {
		set.add("hourly_rate", *u.HourlyRate)
	}
	if u.Availability != nil {
		set.add("availability", *u.Availability)
	}
	if u.YearsOfExperience != nil {
		set.add("years_of_experience", *u.YearsOfExperience)
	}
	if u.ProfileCompleted != nil {
		set.add("profile_completed", *u.ProfileCompleted)
	}
	if u.Location != nil {
		set.add("location", *u.Location)
	}
	if u.PrimaryRole != nil {
		set.add("primary_role", *u.PrimaryRole)
	}
	if u.LinkedinURL != nil {
		set.add("linkedin_url", *u.LinkedinURL)
	}
	if u.GithubURL != nil {
		set.add("github_url", *u.GithubURL)
	}
	if u.PortfolioURL != nil {
		set.add("portfolio_url", *u.PortfolioURL)
	}
	if u.ResumeURL != nil {
		set.add("resume_url", *u.ResumeURL)
	}
	if u.OpenToWork != nil {
		set.add("open_to_work", *u.OpenToWork)
	}
	if u.PreferredJobTypes != nil {
		set.add("preferred_job_types", pq.Array(*u.PreferredJobTypes))
	}
	if u.PreferredWorkLocation != nil {
		set.add("preferred_work_location", *u.PreferredWorkLocation)
	}

	if set.empty() {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE talents SET `+set.String()+` WHERE user_id = $1`, set.args...)
	return mapError(err)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
