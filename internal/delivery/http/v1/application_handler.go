package v1

import (
	"net/http"
	"time"

	"talent-marketplace-backend/internal/delivery/http/response"
	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const msgApplicationNotOwned = "Application not found or unauthorized"

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase, talentOnly, clientOnly gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		applications.POST("", talentOnly, handler.Apply)
		applications.GET("/talent", talentOnly, handler.List)
		applications.GET("/client", clientOnly, handler.List)
		applications.PUT("/:id/status", clientOnly, handler.UpdateStatus)
		applications.PUT("/:id/interview", clientOnly, handler.ScheduleInterview)
	}
}

type ApplyRequest struct {
	JobID       string  `json:"jobId"`
	CoverLetter *string `json:"coverLetter" binding:"omitempty,max=10000"`
	ResumeURL   *string `json:"resumeUrl" binding:"omitempty,url"`
}

type UpdateApplicationStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes" binding:"omitempty,max=5000"`
}

type ScheduleInterviewRequest struct {
	InterviewDate time.Time `json:"interviewDate"`
}

// ApplicationListResponse is the body of the application listings.
type ApplicationListResponse struct {
	Applications []domain.Application `json:"applications"`
	Pagination   domain.Pagination    `json:"pagination"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit a pending application to an active job (talent only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Application"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorResponse
// @Failure      403   {object}  response.ErrorResponse
// @Failure      404   {object}  response.ErrorResponse
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), domain.ApplyInput{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", gin.H{"application": app})
}

// List godoc
// @Summary      List applications
// @Description  Talents see their own applications; clients see applications to their jobs
// @Tags         applications
// @Produce      json
// @Param        jobId   query     string  false  "Job ID"
// @Param        status  query     string  false  "Application status"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  ApplicationListResponse
// @Failure      401     {object}  response.ErrorResponse
// @Failure      403     {object}  response.ErrorResponse
// @Router       /applications/talent [get]
// @Router       /applications/client [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := domain.ApplicationFilter{
		JobID:  c.Query("jobId"),
		Status: c.Query("status"),
	}

	apps, pagination, err := h.applicationUC.ListApplications(
		c.Request.Context(),
		c.GetString(string(domain.KeyUserID)),
		c.GetString(string(domain.KeyAccountType)),
		filter,
		parsePageRequest(c),
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ApplicationListResponse{Applications: apps, Pagination: pagination})
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Hiring an applicant marks the job as filled
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                          true  "Application ID"
// @Param        body  body      UpdateApplicationStatusRequest  true  "Status and notes"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorResponse
// @Failure      404   {object}  response.ErrorResponse
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, msgApplicationNotOwned)
	if !ok {
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	app, err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id, req.Status, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated successfully", gin.H{"application": app})
}

// ScheduleInterview godoc
// @Summary      Schedule an interview
// @Description  Sets the interview time and shortlists the application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Application ID"
// @Param        body  body      ScheduleInterviewRequest  true  "RFC 3339 interview date"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  response.ErrorResponse
// @Failure      404   {object}  response.ErrorResponse
// @Router       /applications/{id}/interview [put]
// @Security     BearerAuth
func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	id, ok := pathUUID(c, msgApplicationNotOwned)
	if !ok {
		return
	}

	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("interviewDate must be an RFC 3339 timestamp"))
		return
	}

	app, err := h.applicationUC.ScheduleInterview(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id, req.InterviewDate)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview scheduled successfully", gin.H{"application": app})
}
