package supabase

import (
	"context"
	"errors"
	"fmt"

	"talent-marketplace-backend/internal/domain"

	supa "github.com/nedpals/supabase-go"
)

// authProvider delegates identity creation and password checks to
// Supabase Auth (GoTrue). Passwords never touch our database.
type authProvider struct {
	client *supa.Client
}

// NewAuthProvider builds the provider from the project URL and the
// service role key.
func NewAuthProvider(supabaseURL, supabaseKey string) (domain.AuthProvider, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, errors.New("supabase URL and key must be provided via SUPABASE_URL / SUPABASE_SERVICE_ROLE_KEY")
	}
	return &authProvider{client: supa.CreateClient(supabaseURL, supabaseKey)}, nil
}

func (p *authProvider) SignUp(ctx context.Context, email, password string) (*domain.AuthIdentity, error) {
	user, err := p.client.Auth.SignUp(ctx, supa.UserCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("sign up returned no user for %s", email)
	}
	return &domain.AuthIdentity{ID: user.ID, Email: user.Email}, nil
}

func (p *authProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthIdentity, error) {
	details, err := p.client.Auth.SignIn(ctx, supa.UserCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if details == nil || details.User.ID == "" {
		return nil, errors.New("sign in returned no user")
	}
	return &domain.AuthIdentity{ID: details.User.ID, Email: details.User.Email}, nil
}
