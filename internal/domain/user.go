package domain

import (
	"context"
	"time"
)

// Account types
const (
	AccountTypeTalent = "talent"
	AccountTypeClient = "client"
	AccountTypeAdmin  = "admin"
)

const ThemeSystem = "system"

type NotificationSettings struct {
	Email              bool `json:"email"`
	ApplicationUpdates bool `json:"application_updates"`
	Messages           bool `json:"messages"`
	Marketing          bool `json:"marketing"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Email:              true,
		ApplicationUpdates: true,
		Messages:           true,
		Marketing:          false,
	}
}

// Profile is the base identity record; ID equals the auth provider's user id.
type Profile struct {
	ID                    string               `json:"id"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
	FullName              *string              `json:"full_name"`
	AvatarURL             *string              `json:"avatar_url"`
	Email                 string               `json:"email"`
	AccountType           *string              `json:"account_type"`
	OnboardingCompleted   bool                 `json:"onboarding_completed"`
	OnboardingStep        int                  `json:"onboarding_step"`
	LastActive            *time.Time           `json:"last_active"`
	NotificationsSettings NotificationSettings `json:"notifications_settings"`
	ThemePreference       string               `json:"theme_preference"`
}

// AccountTypeValue returns the account type or "" when not chosen yet.
func (p *Profile) AccountTypeValue() string {
	if p == nil || p.AccountType == nil {
		return ""
	}
	return *p.AccountType
}

type Talent struct {
	ID                    string   `json:"id"`
	UserID                string   `json:"user_id"`
	Title                 *string  `json:"title"`
	Bio                   *string  `json:"bio"`
	Skills                []string `json:"skills"`
	HourlyRate            *float64 `json:"hourly_rate"`
	Availability          *string  `json:"availability"`
	YearsOfExperience     *int     `json:"years_of_experience"`
	ProfileCompleted      bool     `json:"profile_completed"`
	Location              *string  `json:"location"`
	PrimaryRole           *string  `json:"primary_role"`
	LinkedinURL           *string  `json:"linkedin_url"`
	GithubURL             *string  `json:"github_url"`
	PortfolioURL          *string  `json:"portfolio_url"`
	ResumeURL             *string  `json:"resume_url"`
	OpenToWork            bool     `json:"open_to_work"`
	PreferredJobTypes     []string `json:"preferred_job_types"`
	PreferredWorkLocation *string  `json:"preferred_work_location"`
}

type Client struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	CompanyName        *string `json:"company_name"`
	CompanySize        *string `json:"company_size"`
	Industry           *string `json:"industry"`
	CompanyWebsite     *string `json:"company_website"`
	CompanyDescription *string `json:"company_description"`
	Location           *string `json:"location"`
	LogoURL            *string `json:"logo_url"`
	Verified           bool    `json:"verified"`
	ProfileCompleted   bool    `json:"profile_completed"`
}

// ProfileUpdate is a partial update. Nil fields are left untouched. The
// same value is applied to the profile and to its sub-profile; each table
// only takes the columns it owns.
type ProfileUpdate struct {
	// profiles
	FullName              *string               `json:"full_name" binding:"omitempty,min=1,max=120,valid_name"`
	AvatarURL             *string               `json:"avatar_url" binding:"omitempty,url"`
	OnboardingCompleted   *bool                 `json:"onboarding_completed"`
	OnboardingStep        *int                  `json:"onboarding_step" binding:"omitempty,min=0"`
	NotificationsSettings *NotificationSettings `json:"notifications_settings"`
	ThemePreference       *string               `json:"theme_preference" binding:"omitempty,oneof=light dark system"`

	// talents and clients
	Location         *string `json:"location" binding:"omitempty,max=200"`
	ProfileCompleted *bool   `json:"profile_completed"`

	// talents
	Title                 *string   `json:"title" binding:"omitempty,max=120,no_emoji"`
	Bio                   *string   `json:"bio" binding:"omitempty,max=2000"`
	Skills                *[]string `json:"skills"`
	HourlyRate            *float64  `json:"hourly_rate" binding:"omitempty,gte=0"`
	Availability          *string   `json:"availability" binding:"omitempty,oneof=full-time part-time contract freelance"`
	YearsOfExperience     *int      `json:"years_of_experience" binding:"omitempty,gte=0,lte=80"`
	PrimaryRole           *string   `json:"primary_role" binding:"omitempty,max=120"`
	LinkedinURL           *string   `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL             *string   `json:"github_url" binding:"omitempty,url"`
	PortfolioURL          *string   `json:"portfolio_url" binding:"omitempty,url"`
	ResumeURL             *string   `json:"resume_url" binding:"omitempty,url"`
	OpenToWork            *bool     `json:"open_to_work"`
	PreferredJobTypes     *[]string `json:"preferred_job_types"`
	PreferredWorkLocation *string   `json:"preferred_work_location" binding:"omitempty,oneof=remote onsite hybrid"`

	// clients
	CompanyName        *string `json:"company_name" binding:"omitempty,max=200"`
	CompanySize        *string `json:"company_size" binding:"omitempty,max=50"`
	Industry           *string `json:"industry" binding:"omitempty,max=120"`
	CompanyWebsite     *string `json:"company_website" binding:"omitempty,url"`
	CompanyDescription *string `json:"company_description" binding:"omitempty,max=5000"`
	LogoURL            *string `json:"logo_url" binding:"omitempty,url"`
}

// AuthIdentity is what the external auth provider knows about a user.
type AuthIdentity struct {
	ID    string
	Email string
}

// AuthProvider creates identities and verifies passwords.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*AuthIdentity, error)
	SignIn(ctx context.Context, email, password string) (*AuthIdentity, error)
}

// TokenIssuer signs the {userId, email, accountType} payload.
type TokenIssuer interface {
	Sign(userID, email, accountType string) (string, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, id string, update *ProfileUpdate) (*Profile, error)
	TouchLastActive(ctx context.Context, id string) error
}

type TalentRepository interface {
	Create(ctx context.Context, userID string) error
	GetByUserID(ctx context.Context, userID string) (*Talent, error)
	Update(ctx context.Context, userID string, update *ProfileUpdate) error
}

type ClientRepository interface {
	Create(ctx context.Context, userID string) error
	GetByUserID(ctx context.Context, userID string) (*Client, error)
	Update(ctx context.Context, userID string, update *ProfileUpdate) error
}

type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	AccountType string
}

// UserView is the reduced user returned with a token.
type UserView struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"fullName"`
	AccountType *string `json:"accountType"`
}

type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// ProfileDetails pairs a profile with its talent or client row.
// AdditionalData is nil when the sub-profile is missing.
type ProfileDetails struct {
	Profile        *Profile    `json:"profile"`
	AdditionalData interface{} `json:"additionalData"`
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetCurrentUser(ctx context.Context, id string) (*Profile, error)
	GetProfile(ctx context.Context, userID string) (*ProfileDetails, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*Profile, error)
}
