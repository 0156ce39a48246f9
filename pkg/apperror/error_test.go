package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Code(NotFound("Job not found")))
	assert.Equal(t, http.StatusBadRequest, Code(fmt.Errorf("wrapped: %w", BadRequest("bad"))))
	assert.Equal(t, http.StatusInternalServerError, Code(errors.New("plain")))
}

func TestStoreKeepsMessageAndCause(t *testing.T) {
	cause := errors.New(`duplicate key value violates unique constraint "applications_job_id_talent_id_key"`)
	err := Store(cause)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("connection refused"))
	assert.Equal(t, "Internal server error", err.Error())
}
