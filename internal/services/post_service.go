package services

import (
	"errors"

	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"
)

type PostService interface {
	Create(authorID string, req dto.CreatePostRequest) (*dto.PostResponse, error)
	Get(viewerID, postID string) (*dto.PostResponse, error)
	Delete(authorID, postID string) error
	Feed(viewerID string, query dto.FeedQuery) ([]dto.PostResponse, repositories.Pagination, error)

	Like(userID, postID string) error
	Unlike(userID, postID string) error

	AddComment(userID, postID string, req dto.AddCommentRequest) (*dto.CommentResponse, error)
	ListComments(postID string, page, limit int) ([]dto.CommentResponse, repositories.Pagination, error)
}

type PostServiceImpl struct {
	postRepo     repositories.PostRepository
	userRepo     repositories.UserRepository
	notification NotificationService
}

func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notification NotificationService) PostService {
	return &PostServiceImpl{
		postRepo:     postRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *PostServiceImpl) Create(authorID string, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	visibility := models.PostVisibility(req.Visibility)
	if visibility == "" {
		visibility = models.PostVisibilityPublic
	}

	post := &models.Post{
		AuthorID:   authorID,
		Content:    req.Content,
		Visibility: visibility,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPostResponse(post, authorID), nil
}

func (s *PostServiceImpl) Get(viewerID, postID string) (*dto.PostResponse, error) {
	post, err := s.findVisiblePost(viewerID, postID)
	if err != nil {
		return nil, err
	}
	return dto.NewPostResponse(post, viewerID), nil
}

func (s *PostServiceImpl) Delete(authorID, postID string) error {
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != authorID {
		return apperrors.ErrNotFoundOrUnauthorized(repositories.ErrPostNotFound)
	}
	if err := s.postRepo.Delete(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Feed returns public posts plus connections-only posts from the viewer's
// accepted connections, newest first.
func (s *PostServiceImpl) Feed(viewerID string, query dto.FeedQuery) ([]dto.PostResponse, repositories.Pagination, error) {
	postedAfter, ok := dto.ParseWindow(query.Window, timeNow())
	if !ok {
		return nil, repositories.Pagination{}, apperrors.NewBadRequestError("unknown window token: " + query.Window)
	}

	connectionIDs, err := s.userRepo.FindAcceptedConnectionIDs(viewerID)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	filter := repositories.FeedFilter{
		ViewerID:      viewerID,
		ConnectionIDs: connectionIDs,
		PostedAfter:   postedAfter,
		Page:          query.Page,
		PageSize:      query.Limit,
	}
	posts, total, err := s.postRepo.FindFeed(filter)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *dto.NewPostResponse(&posts[i], viewerID))
	}
	return responses, repositories.NewPagination(query.Page, query.Limit, total), nil
}

func (s *PostServiceImpl) Like(userID, postID string) error {
	post, err := s.findVisiblePost(userID, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.AddLike(postID, userID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyLiked) {
			// Liking twice is a no-op, set semantics.
			return nil
		}
		return apperrors.InternalError(err)
	}

	s.notification.NotifyPostLiked(post, userID)
	return nil
}

func (s *PostServiceImpl) Unlike(userID, postID string) error {
	if err := s.postRepo.RemoveLike(postID, userID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PostServiceImpl) AddComment(userID, postID string, req dto.AddCommentRequest) (*dto.CommentResponse, error) {
	post, err := s.findVisiblePost(userID, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.postRepo.AddComment(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notification.NotifyPostCommented(post, userID, req.Content)
	return dto.NewCommentResponse(comment), nil
}

func (s *PostServiceImpl) ListComments(postID string, page, limit int) ([]dto.CommentResponse, repositories.Pagination, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, repositories.Pagination{}, err
	}

	comments, total, err := s.postRepo.FindComments(postID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.NewCommentResponse(&comments[i]))
	}
	return responses, repositories.NewPagination(page, limit, total), nil
}

func (s *PostServiceImpl) findPost(postID string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

// findVisiblePost enforces visibility: private posts only for the author,
// connections-only posts for the author and accepted connections. Invisible
// posts look like missing posts.
func (s *PostServiceImpl) findVisiblePost(viewerID, postID string) (*models.Post, error) {
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID == viewerID || post.Visibility == models.PostVisibilityPublic {
		return post, nil
	}
	if post.Visibility == models.PostVisibilityConnections {
		conn, err := s.userRepo.FindConnection(viewerID, post.AuthorID)
		if err == nil && conn.Accepted {
			return post, nil
		}
		if err != nil && !errors.Is(err, repositories.ErrConnectionNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}
	return nil, apperrors.ErrNotFoundOrUnauthorized(repositories.ErrPostNotFound)
}
