package dto

import (
	"time"

	"chainwork_backend/internal/models"
)

type CreatePostRequest struct {
	Content    string `json:"content" validate:"required,min=1,max=5000"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public connections private"`
}

type FeedQuery struct {
	PageQuery
	Window string `form:"window" validate:"omitempty,oneof=1h 24h week month"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type PostResponse struct {
	ID           string        `json:"id"`
	Content      string        `json:"content"`
	Visibility   string        `json:"visibility"`
	Author       *UserResponse `json:"author,omitempty"`
	LikeCount    int           `json:"likeCount"`
	LikedByMe    bool          `json:"likedByMe"`
	CommentCount int           `json:"commentCount"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func NewPostResponse(post *models.Post, viewerID string) *PostResponse {
	resp := &PostResponse{
		ID:         post.ID,
		Content:    post.Content,
		Visibility: string(post.Visibility),
		LikeCount:  len(post.Likes),
		CreatedAt:  post.CreatedAt,
	}
	if post.Author != nil {
		resp.Author = NewUserResponse(post.Author, false)
	}
	for _, like := range post.Likes {
		if like.UserID == viewerID {
			resp.LikedByMe = true
			break
		}
	}
	resp.CommentCount = len(post.Comments)
	return resp
}

type CommentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func NewCommentResponse(comment *models.PostComment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		resp.User = NewUserResponse(comment.User, false)
	}
	return resp
}
