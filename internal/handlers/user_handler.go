package handlers

import (
	"io"
	"net/http"
	"strings"

	"chainwork_backend/internal/config"
	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
	aiService   services.AIService
	cfg         *config.Config
}

func NewUserHandler(base BaseHandler, userService services.UserService, aiService services.AIService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		aiService:   aiService,
		cfg:         cfg,
	}
}

func (h *UserHandler) RegisterRoutes(private *gin.RouterGroup) {
	private.GET("/users", h.Search)
	private.GET("/users/:userId", h.GetProfile)
	private.PUT("/users/me", h.UpdateProfile)
	private.DELETE("/users/me", h.DeleteAccount)

	private.POST("/users/:userId/connect", h.RequestConnection)
	private.PUT("/users/me/connections/:userId/accept", h.AcceptConnection)
	private.DELETE("/users/me/connections/:userId", h.RemoveConnection)
	private.GET("/users/me/connections", h.ListConnections)

	private.POST("/users/me/resume", h.UploadResume)
	private.POST("/users/me/bio/generate", h.GenerateBio)
	private.POST("/users/me/skills/extract", h.ExtractSkills)

	private.POST("/users/me/saved-jobs/:jobId", h.SaveJob)
	private.DELETE("/users/me/saved-jobs/:jobId", h.UnsaveJob)
	private.GET("/users/me/saved-jobs", h.ListSavedJobs)
}

func (h *UserHandler) Search(c *gin.Context) {
	var query dto.UserQuery
	if !h.bindQuery(c, &query) {
		return
	}

	users, pagination, err := h.userService.Search(query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, users, pagination)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)
	userID := c.Param("userId")
	if userID == "me" {
		userID = viewerID
	} else if _, ok := h.uuidParam(c, "userId"); !ok {
		return
	}

	profile, err := h.userService.GetProfile(viewerID, userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(middleware.CurrentUserID(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userService.DeleteAccount(middleware.CurrentUserID(c)); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RequestConnection(c *gin.Context) {
	recipientID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.userService.RequestConnection(middleware.CurrentUserID(c), recipientID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *UserHandler) AcceptConnection(c *gin.Context) {
	requesterID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.userService.AcceptConnection(middleware.CurrentUserID(c), requesterID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UserHandler) RemoveConnection(c *gin.Context) {
	otherID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.userService.RemoveConnection(middleware.CurrentUserID(c), otherID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListConnections(c *gin.Context) {
	page, limit := pageParams(c)
	users, pagination, err := h.userService.ListConnections(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, users, pagination)
}

// UploadResume accepts a resume file and runs it through AI parsing. The
// file content is treated as text; binary formats go to the model as-is.
func (h *UserHandler) UploadResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing resume file"))
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxSize {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return
	}
	if !h.allowedUploadType(header.Header.Get("Content-Type")) {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.cfg.Upload.MaxSize))
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	parsed, err := h.aiService.ParseResume(c.Request.Context(), middleware.CurrentUserID(c), string(content))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume": parsed})
}

func (h *UserHandler) GenerateBio(c *gin.Context) {
	// Body is optional, extra keywords only.
	var req dto.GenerateBioRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	bio, err := h.aiService.GenerateBio(c.Request.Context(), middleware.CurrentUserID(c), req.Keywords)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bio": bio})
}

func (h *UserHandler) ExtractSkills(c *gin.Context) {
	var req dto.ExtractSkillsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	skills, err := h.aiService.ExtractSkills(c.Request.Context(), req.Text)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *UserHandler) SaveJob(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	if err := h.userService.SaveJob(middleware.CurrentUserID(c), jobID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *UserHandler) UnsaveJob(c *gin.Context) {
	jobID, ok := h.uuidParam(c, "jobId")
	if !ok {
		return
	}

	if err := h.userService.UnsaveJob(middleware.CurrentUserID(c), jobID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListSavedJobs(c *gin.Context) {
	page, limit := pageParams(c)
	jobs, pagination, err := h.userService.ListSavedJobs(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, jobs, pagination)
}

func (h *UserHandler) allowedUploadType(contentType string) bool {
	contentType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	for _, allowed := range h.cfg.Upload.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
