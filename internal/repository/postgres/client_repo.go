package postgres

import (
	"context"

	"talent-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, user_id, company_name, company_size, industry, company_website,
	company_description, location, logo_url, verified, profile_completed`

type clientRepo struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) domain.ClientRepository {
	return &clientRepo{db: db}
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.UserID, &c.CompanyName, &c.CompanySize, &c.Industry, &c.CompanyWebsite,
		&c.CompanyDescription, &c.Location, &c.LogoURL, &c.Verified, &c.ProfileCompleted,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, userID string) error {
	query := `INSERT INTO clients (user_id, profile_completed) VALUES ($1, FALSE)`
	_, err := r.db.Exec(ctx, query, userID)
	return mapError(err)
}

func (r *clientRepo) GetByUserID(ctx context.Context, userID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1`
	return scanClient(r.db.QueryRow(ctx, query, userID))
}

// Update applies the client-owned columns of u. verified is never set here.
func (r *clientRepo) Update(ctx context.Context, userID string, u *domain.ProfileUpdate) error {
	set := newSetClause(userID)
	if u.CompanyName != nil {
		set.add("company_name", *u.CompanyName)
	}
	if u.CompanySize != nil {
		set.add("company_size", *u.CompanySize)
	}
	if u.Industry != nil {
		set.add("industry", *u.Industry)
	}
	if u.CompanyWebsite != nil {
		set.add("company_website", *u.CompanyWebsite)
	}
	if u.CompanyDescription != nil {
		set.add("company_description", *u.CompanyDescription)
	}
	if u.Location != nil {
		set.add("location", *u.Location)
	}
	if u.LogoURL != nil {
		set.add("logo_url", *u.LogoURL)
	}
	if u.ProfileCompleted != nil {
		set.add("profile_completed", *u.ProfileCompleted)
	}

	if set.empty() {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE clients SET `+set.String()+` WHERE user_id = $1`, set.args...)
	return mapError(err)
}
