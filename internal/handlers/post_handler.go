package handlers

import (
	"net/http"

	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	BaseHandler
	postService services.PostService
}

func NewPostHandler(base BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{BaseHandler: base, postService: postService}
}

func (h *PostHandler) RegisterRoutes(private *gin.RouterGroup) {
	private.POST("/posts", h.Create)
	private.GET("/posts/feed", h.Feed)
	private.GET("/posts/:postId", h.Get)
	private.DELETE("/posts/:postId", h.Delete)

	private.POST("/posts/:postId/like", h.Like)
	private.DELETE("/posts/:postId/like", h.Unlike)

	private.POST("/posts/:postId/comments", h.AddComment)
	private.GET("/posts/:postId/comments", h.ListComments)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(middleware.CurrentUserID(c), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Feed(c *gin.Context) {
	var query dto.FeedQuery
	if !h.bindQuery(c, &query) {
		return
	}

	posts, pagination, err := h.postService.Feed(middleware.CurrentUserID(c), query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, posts, pagination)
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := h.uuidParam(c, "postId")
	if !ok {
		return
	}

	post, err := h.postService.Get(middleware.CurrentUserID(c), postID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := h.uuidParam(c, "postId")
	if !ok {
		return
	}

	if err := h.postService.Delete(middleware.CurrentUserID(c), postID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	postID, ok := h.uuidParam(c, "postId")
	if !ok {
		return
	}

	if err := h.postService.Like(middleware.CurrentUserID(c), postID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	postID, ok := h.uuidParam(c, "postId")
	if !ok {
		return
	}

	if err := h.postService.Unlike(middleware.CurrentUserID(c), postID); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := h.uuidParam(c, "postId")
	if !ok {
		return
	}
	var req dto.AddCommentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	comment, err := h.postService.AddComment(middleware.CurrentUserID(c), postID, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := h.uuidParam(c, "postId")
	if !ok {
		return
	}

	page, limit := pageParams(c)
	comments, pagination, err := h.postService.ListComments(postID, page, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	respondList(c, comments, pagination)
}
