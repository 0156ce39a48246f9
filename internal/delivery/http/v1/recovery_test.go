package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talent-marketplace-backend/config"
	"talent-marketplace-backend/internal/delivery/http/middleware"
	v1 "talent-marketplace-backend/internal/delivery/http/v1"
	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/internal/usecase"
	"talent-marketplace-backend/pkg/auth"
	"talent-marketplace-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// panickingJobs blows up on listing; every other method is unused here.
type panickingJobs struct {
	domain.JobUsecase
}

func (panickingJobs) ListJobs(ctx context.Context, filter domain.JobFilter, page domain.PageRequest) ([]domain.Job, domain.Pagination, error) {
	panic("index out of range")
}

func TestHandlerPanicIsRendered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        usecase.NewAuthUsecase(newFakeProvider(), tokens, profileRepo{store}, talentRepo{store}, clientRepo{store}),
		JobUC:         panickingJobs{},
		ApplicationUC: usecase.NewApplicationUsecase(applicationRepo{store}, jobRepo{store}),
		HealthUC:      usecase.NewHealthUsecase(map[string]usecase.HealthCheck{}),
		Tokens:        tokens,
		LoginGuard:    newFakeGuard(3),
		RateLimiter:   middleware.NewRateLimiter(nil, security.Nop()),
		SecLog:        security.Nop(),
		Config: &config.Config{
			FrontendURL:              "http://localhost:3000",
			RateLimitWindowSeconds:   60,
			RateLimitLoginThreshold:  1000,
			RateLimitGlobalThreshold: 1000,
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
