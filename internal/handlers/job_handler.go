package handlers

import (
	"net/http"

	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	BaseHandler
	jobService      services.JobService
	aiService       services.AIService
	matchingService services.MatchingService
}

func NewJobHandler(base BaseHandler, jobService services.JobService, aiService services.AIService, matchingService services.MatchingService) *JobHandler {
	return &JobHandler{
		BaseHandler:     base,
		jobService:      jobService,
		aiService:       aiService,
		matchingService: matchingService,
	}
}

func (h *JobHandler) RegisterRoutes(private *gin.RouterGroup) {
	private.POST("/jobs", h.Create)
	private.GET("/jobs", h.List)
	private.GET("/jobs/me", h.ListMine)
	private.GET("/jobs/:jobId", h.Get)
	private.PUT("/jobs/:jobId", h.Update)
	private.DELETE("/jobs/:jobId", h.Delete)

	private.POST("/jobs/:jobId/apply", h.Apply)
	private.GET("/jobs/:jobId/applicants", h.ListApplicants)
	private.PUT("/jobs/:jobId/applicants/:userId/status", h.UpdateApplicationStatus)
	private.GET("/jobs/me/applications", h.ListMyApplications)

	private.POST("/jobs/:jobId/enhance-description", h.EnhanceDescription)
	private.POST("/jobs/:jobId/cover-letter/generate", h.GenerateCoverLetter)
	private.GET("/jobs/:jobId/match-score", h.MatchScore)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(middleware.CurrentUserID(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) List(c *gin.Context) {
	var query dto.JobQuery
	if !h.bindQuery(c, &query) {
		return
	}

	jobs, pagination, err := h.jobService.List(query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, jobs, pagination)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	page, limit := pageParams(c)
	jobs, pagination, err := h.jobService.ListMine(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, jobs, pagination)
}

func (h *JobHandler) Get(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	job, err := h.jobService.Get(jobID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(middleware.CurrentUserID(c), jobID, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	if err := h.jobService.Delete(middleware.CurrentUserID(c), jobID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Apply(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}
	// Cover letter and resume URL are optional, so an empty body is fine.
	var req dto.ApplyJobRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	application, err := h.jobService.Apply(middleware.CurrentUserID(c), jobID, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *JobHandler) ListApplicants(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	page, limit := pageParams(c)
	applicants, pagination, err := h.jobService.ListApplicants(middleware.CurrentUserID(c), jobID, page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, applicants, pagination)
}

func (h *JobHandler) ListMyApplications(c *gin.Context) {
	page, limit := pageParams(c)
	applications, pagination, err := h.jobService.ListMyApplications(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, applications, pagination)
}

func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}
	applicantID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	err := h.jobService.UpdateApplicationStatus(middleware.CurrentUserID(c), jobID, applicantID, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *JobHandler) EnhanceDescription(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	enhanced, err := h.aiService.EnhanceJobDescription(c.Request.Context(), middleware.CurrentUserID(c), jobID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": enhanced})
}

func (h *JobHandler) GenerateCoverLetter(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}
	// Body is optional, notes only.
	var req dto.CoverLetterRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	letter, err := h.aiService.GenerateCoverLetter(c.Request.Context(), middleware.CurrentUserID(c), jobID, req.Notes)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coverLetter": letter})
}

func (h *JobHandler) MatchScore(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	report, err := h.matchingService.Score(c.Request.Context(), middleware.CurrentUserID(c), jobID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
