package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/logger"
)

type authUsecase struct {
	provider    domain.AuthProvider
	tokens      domain.TokenIssuer
	profileRepo domain.ProfileRepository
	talentRepo  domain.TalentRepository
	clientRepo  domain.ClientRepository
}

func NewAuthUsecase(
	provider domain.AuthProvider,
	tokens domain.TokenIssuer,
	profileRepo domain.ProfileRepository,
	talentRepo domain.TalentRepository,
	clientRepo domain.ClientRepository,
) domain.AuthUsecase {
	return &authUsecase{
		provider:    provider,
		tokens:      tokens,
		profileRepo: profileRepo,
		talentRepo:  talentRepo,
		clientRepo:  clientRepo,
	}
}

// Register creates the identity, the profile and the role sub-profile, in
// that order. A failed sub-profile insert is logged and does not fail the
// registration.
func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" || input.Password == "" || input.FullName == "" || input.AccountType == "" {
		return nil, apperror.BadRequest("Missing required fields")
	}
	if input.AccountType != domain.AccountTypeTalent && input.AccountType != domain.AccountTypeClient {
		return nil, apperror.BadRequest("accountType must be one of: talent client")
	}

	existing, err := u.profileRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Store(err)
	}
	if existing != nil {
		return nil, apperror.BadRequest("Email already registered")
	}

	identity, err := u.provider.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, err.Error(), err)
	}

	fullName := input.FullName
	accountType := input.AccountType
	profile := &domain.Profile{
		ID:                    identity.ID,
		Email:                 input.Email,
		FullName:              &fullName,
		AccountType:           &accountType,
		OnboardingCompleted:   false,
		OnboardingStep:        0,
		NotificationsSettings: domain.DefaultNotificationSettings(),
		ThemePreference:       domain.ThemeSystem,
	}
	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, apperror.Store(err)
	}

	var subErr error
	if accountType == domain.AccountTypeTalent {
		subErr = u.talentRepo.Create(ctx, identity.ID)
	} else {
		subErr = u.clientRepo.Create(ctx, identity.ID)
	}
	if subErr != nil {
		logger.Log.Warn("Failed to create sub-profile",
			"user_id", identity.ID, "account_type", accountType, "error", subErr)
	}

	token, err := u.tokens.Sign(identity.ID, profile.Email, accountType)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.AuthResult{
		Token: token,
		User: domain.UserView{
			ID:          identity.ID,
			Email:       profile.Email,
			FullName:    profile.FullName,
			AccountType: profile.AccountType,
		},
	}, nil
}

// Login checks the password with the provider. Every provider rejection
// maps to the same message.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Missing required fields")
	}

	identity, err := u.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Invalid credentials", err)
	}

	profile, err := u.profileRepo.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, apperror.Store(err)
	}

	if err := u.profileRepo.TouchLastActive(ctx, profile.ID); err != nil {
		logger.Log.Warn("Failed to update last_active", "user_id", profile.ID, "error", err)
	}

	token, err := u.tokens.Sign(profile.ID, profile.Email, profile.AccountTypeValue())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.AuthResult{
		Token: token,
		User: domain.UserView{
			ID:          profile.ID,
			Email:       profile.Email,
			FullName:    profile.FullName,
			AccountType: profile.AccountType,
		},
	}, nil
}

// GetCurrentUser returns the raw repository error so the caller decides
// how an unknown user is reported.
func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.Profile, error) {
	return u.profileRepo.GetByID(ctx, id)
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*domain.ProfileDetails, error) {
	profile, err := u.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Store(err)
	}

	details := &domain.ProfileDetails{Profile: profile}

	var subErr error
	switch profile.AccountTypeValue() {
	case domain.AccountTypeTalent:
		var talent *domain.Talent
		if talent, subErr = u.talentRepo.GetByUserID(ctx, userID); subErr == nil {
			details.AdditionalData = talent
		}
	case domain.AccountTypeClient:
		var client *domain.Client
		if client, subErr = u.clientRepo.GetByUserID(ctx, userID); subErr == nil {
			details.AdditionalData = client
		}
	}
	if subErr != nil && !errors.Is(subErr, domain.ErrNotFound) {
		logger.Log.Warn("Failed to load sub-profile", "user_id", userID, "error", subErr)
	}

	return details, nil
}

// UpdateProfile writes the profile first and the sub-profile second, as two
// independent statements.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := u.profileRepo.Update(ctx, userID, update)
	if err != nil {
		return nil, apperror.Store(err)
	}

	switch profile.AccountTypeValue() {
	case domain.AccountTypeTalent:
		err = u.talentRepo.Update(ctx, userID, update)
	case domain.AccountTypeClient:
		err = u.clientRepo.Update(ctx, userID, update)
	}
	if err != nil {
		return nil, apperror.Store(err)
	}

	return profile, nil
}
