package v1

import (
	"context"
	"net/http"

	"talent-marketplace-backend/internal/delivery/http/response"
	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/logger"
	"talent-marketplace-backend/pkg/security"
	"talent-marketplace-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// LoginGuard tracks failed logins and blocks abusive clients.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}

type AuthHandler struct {
	authUC domain.AuthUsecase
	guard  LoginGuard
	secLog *security.SecurityLogger
}

// NewAuthHandler registers auth routes. authLimit runs before register and
// login only.
func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, guard LoginGuard, secLog *security.SecurityLogger, authLimit gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC: authUC,
		guard:  guard,
		secLog: secLog,
	}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", authLimit, handler.Register)
		publicAuth.POST("/login", authLimit, handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/profile", handler.GetProfile)
		protectedAuth.PUT("/profile", handler.UpdateProfile)
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName" binding:"omitempty,max=120,valid_name"`
	AccountType string `json:"accountType"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    domain.UserView `json:"user"`
}

// Register godoc
// @Summary      Register
// @Description  Create an account as a talent or a client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201       {object}  AuthResponse
// @Failure      400       {object}  response.ErrorResponse
// @Failure      429       {object}  response.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		AccountType: req.AccountType,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.secLog.LogRegistered(c.Request.Context(), result.User.ID, req.AccountType, c.ClientIP(), requestID(c))

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// Login godoc
// @Summary      Login
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  AuthResponse
// @Failure      400    {object}  response.ErrorResponse
// @Failure      401    {object}  response.ErrorResponse
// @Failure      429    {object}  response.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()

	if req.Email != "" {
		blocked, err := h.guard.IsBlocked(ctx, req.Email, ip)
		if err != nil {
			// Fail open: the provider still checks the password.
			logger.Log.Warn("Login block check failed", "error", err, "request_id", requestID(c))
		}
		if blocked {
			h.secLog.LogLoginBlocked(ctx, req.Email, ip, c.Request.UserAgent(), requestID(c))
			c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
			return
		}
	}

	result, err := h.authUC.Login(ctx, req.Email, req.Password)
	if err != nil {
		if apperror.Code(err) == http.StatusUnauthorized {
			if _, _, trackErr := h.guard.RecordFailedAttempt(ctx, req.Email, ip, c.Request.UserAgent(), requestID(c)); trackErr != nil {
				logger.Log.Warn("Failed to record login attempt", "error", trackErr, "request_id", requestID(c))
			}
		}
		c.Error(err)
		return
	}

	if err := h.guard.ClearAttempts(ctx, req.Email, ip); err != nil {
		logger.Log.Warn("Failed to clear login attempts", "error", err, "request_id", requestID(c))
	}
	h.secLog.LogLoginSuccess(ctx, result.User.ID, ip, c.Request.UserAgent(), requestID(c))

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

// GetProfile godoc
// @Summary      Current profile
// @Description  Profile plus the talent or client record, or null when it is missing
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.ProfileDetails
// @Failure      401  {object}  response.ErrorResponse
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (h *AuthHandler) GetProfile(c *gin.Context) {
	details, err := h.authUC.GetProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Partial update applied to the profile and then to the talent or client record
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileUpdate  true  "Fields to change"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  response.ErrorResponse
// @Failure      401      {object}  response.ErrorResponse
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	profile, err := h.authUC.UpdateProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"profile": profile})
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}
