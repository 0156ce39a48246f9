package v1

import (
	"net/http"
	"strconv"
	"time"

	"talent-marketplace-backend/internal/delivery/http/response"
	"talent-marketplace-backend/internal/domain"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgJobNotOwned = "Job not found or unauthorized"

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers job routes. Listing and details are public; the
// rest is for clients only.
func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase, clientOnly gin.HandlerFunc) {
	handler := &JobHandler{jobUC: jobUC}

	// Registered before /jobs/:id so the static segment wins.
	protectedJobs := protected.Group("/jobs", clientOnly)
	{
		protectedJobs.GET("/client/jobs", handler.ListClientJobs)
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}

	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}
}

type CreateJobRequest struct {
	Title               string     `json:"title" binding:"max=200"`
	Description         string     `json:"description"`
	SkillsRequired      []string   `json:"skills_required"`
	JobType             *string    `json:"job_type" binding:"omitempty,oneof=full-time part-time contract freelance"`
	ExperienceLevel     *string    `json:"experience_level" binding:"omitempty,oneof=entry mid senior lead"`
	Location            *string    `json:"location" binding:"omitempty,max=200"`
	SalaryMin           *float64   `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax           *float64   `json:"salary_max" binding:"omitempty,gte=0"`
	SalaryCurrency      string     `json:"salary_currency" binding:"omitempty,len=3"`
	Remote              bool       `json:"remote"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CategoryID          *string    `json:"category_id"`
	Perks               []string   `json:"perks"`
}

// JobListResponse is the body of GET /jobs.
type JobListResponse struct {
	Jobs       []domain.Job      `json:"jobs"`
	Pagination domain.Pagination `json:"pagination"`
}

// Create godoc
// @Summary      Create a job
// @Description  Create a draft job owned by the calling client
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	job := &domain.Job{
		Title:               req.Title,
		Description:         req.Description,
		SkillsRequired:      req.SkillsRequired,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryCurrency:      req.SalaryCurrency,
		Remote:              req.Remote,
		ApplicationDeadline: req.ApplicationDeadline,
		CategoryID:          req.CategoryID,
		Perks:               req.Perks,
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", gin.H{"job": job})
}

// List godoc
// @Summary      List jobs
// @Description  Public job search, newest first
// @Tags         jobs
// @Produce      json
// @Param        page             query     int     false  "Page (default 1)"
// @Param        limit            query     int     false  "Page size (default 10, max 100)"
// @Param        search           query     string  false  "Substring of title or description"
// @Param        category         query     string  false  "Category ID"
// @Param        jobType          query     string  false  "Job type"
// @Param        experienceLevel  query     string  false  "Experience level"
// @Param        location         query     string  false  "Location"
// @Param        remote           query     string  false  "\"true\" for remote jobs"
// @Param        minSalary        query     number  false  "Minimum salary_min"
// @Param        maxSalary        query     number  false  "Maximum salary_max"
// @Success      200  {object}  JobListResponse
// @Failure      400  {object}  response.ErrorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter, err := parseJobFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, pagination, err := h.jobUC.ListJobs(c.Request.Context(), filter, parsePageRequest(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, JobListResponse{Jobs: jobs, Pagination: pagination})
}

// GetDetails godoc
// @Summary      Job details
// @Description  Job with its owning client; counts a view
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.JobDetails
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := pathUUID(c, "Job not found")
	if !ok {
		return
	}

	details, err := h.jobUC.GetJobDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ListClientJobs godoc
// @Summary      Client's jobs
// @Description  Every job owned by the caller, optionally filtered by status
// @Tags         jobs
// @Produce      json
// @Param        status  query     string  false  "Job status"
// @Success      200     {object}  map[string]interface{}
// @Failure      401     {object}  response.ErrorResponse
// @Failure      403     {object}  response.ErrorResponse
// @Router       /jobs/client/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListClientJobs(c *gin.Context) {
	jobs, err := h.jobUC.ListClientJobs(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Update godoc
// @Summary      Update a job
// @Description  Partial update of a job owned by the caller
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      domain.JobUpdate  true  "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, msgJobNotOwned)
	if !ok {
		return
	}

	var req domain.JobUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", gin.H{"job": job})
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, msgJobNotOwned)
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

func parseJobFilter(c *gin.Context) (domain.JobFilter, error) {
	filter := domain.JobFilter{
		Search:          c.Query("search"),
		Category:        c.Query("category"),
		JobType:         c.Query("jobType"),
		ExperienceLevel: c.Query("experienceLevel"),
		Location:        c.Query("location"),
	}

	if v, ok := c.GetQuery("remote"); ok {
		remote := v == "true"
		filter.Remote = &remote
	}

	var err error
	if filter.MinSalary, err = floatQuery(c, "minSalary"); err != nil {
		return filter, err
	}
	if filter.MaxSalary, err = floatQuery(c, "maxSalary"); err != nil {
		return filter, err
	}
	return filter, nil
}

func floatQuery(c *gin.Context, key string) (*float64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperror.BadRequest(key + " must be a number")
	}
	return &f, nil
}

// parsePageRequest ignores malformed values and lets NewPageRequest apply
// the defaults.
func parsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return domain.NewPageRequest(page, limit)
}

// pathUUID reads the :id parameter. A malformed id cannot name a row, so
// it is reported with the same not-found message as a missing one.
func pathUUID(c *gin.Context, notFoundMsg string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(apperror.NotFound(notFoundMsg))
		return "", false
	}
	return id, true
}
