package handlers

import (
	"errors"
	"net/http"

	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/internal/validator"
	"chainwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) BaseHandler {
	return BaseHandler{validator: v}
}

// bindJSON decodes and validates a JSON body. On failure it writes the
// error response and returns false.
func (h *BaseHandler) bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	return h.validate(c, out)
}

// bindQuery decodes and validates query parameters.
func (h *BaseHandler) bindQuery(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindQuery(out); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	return h.validate(c, out)
}

func (h *BaseHandler) validate(c *gin.Context, v interface{}) bool {
	err := h.validator.Validate(v)
	if err == nil {
		return true
	}

	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		apperrors.HandleError(c, apperrors.ValidationError(validationErr.Errors))
	} else {
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

// uuidParam reads a path parameter and rejects non-UUID values before they
// reach the store.
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if _, err := uuid.Parse(value); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid "+name))
		return "", false
	}
	return value, true
}

// pageParams reads page/limit without validation; normalization happens in
// the pagination layer.
func pageParams(c *gin.Context) (int, int) {
	var q dto.PageQuery
	_ = c.ShouldBindQuery(&q)
	return q.Page, q.Limit
}

func respondList(c *gin.Context, items interface{}, pagination repositories.Pagination) {
	c.JSON(http.StatusOK, dto.ListResponse{Items: items, Pagination: pagination})
}
