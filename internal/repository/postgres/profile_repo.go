package postgres

import (
	"context"
	"encoding/json"
	"time"

	"talent-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, email, full_name, avatar_url, account_type, onboarding_completed,
	onboarding_step, last_active, notifications_settings, theme_preference, created_at, updated_at`

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var settings []byte
	err := row.Scan(
		&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.AccountType, &p.OnboardingCompleted,
		&p.OnboardingStep, &p.LastActive, &settings, &p.ThemePreference, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	p.NotificationsSettings = domain.DefaultNotificationSettings()
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &p.NotificationsSettings); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	settings, err := json.Marshal(p.NotificationsSettings)
	if err != nil {
		return err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO profiles (id, email, full_name, account_type, onboarding_completed,
	              onboarding_step, notifications_settings, theme_preference, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10)`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.Email, p.FullName, p.AccountType, p.OnboardingCompleted,
		p.OnboardingStep, string(settings), p.ThemePreference, p.CreatedAt, p.UpdatedAt,
	)
	return mapError(err)
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, id))
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRow(ctx, query, email))
}

// Update writes the profile-owned columns of u and returns the fresh row.
func (r *profileRepo) Update(ctx context.Context, id string, u *domain.ProfileUpdate) (*domain.Profile, error) {
	set := newSetClause(id)
	if u.FullName != nil {
		set.add("full_name", *u.FullName)
	}
	if u.AvatarURL != nil {
		set.add("avatar_url", *u.AvatarURL)
	}
	if u.OnboardingCompleted != nil {
		set.add("onboarding_completed", *u.OnboardingCompleted)
	}
	if u.OnboardingStep != nil {
		set.add("onboarding_step", *u.OnboardingStep)
	}
	if u.NotificationsSettings != nil {
		settings, err := json.Marshal(u.NotificationsSettings)
		if err != nil {
			return nil, err
		}
		set.addCast("notifications_settings", string(settings), "jsonb")
	}
	if u.ThemePreference != nil {
		set.add("theme_preference", *u.ThemePreference)
	}

	if set.empty() {
		return r.GetByID(ctx, id)
	}
	set.add("updated_at", time.Now())

	query := `UPDATE profiles SET ` + set.String() + ` WHERE id = $1 RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRow(ctx, query, set.args...))
}

func (r *profileRepo) TouchLastActive(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE profiles SET last_active = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
