package repositories

import (
	"errors"
	"time"

	"chainwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrLikeNotFound    = errors.New("like not found")
)

type FeedFilter struct {
	ViewerID      string
	ConnectionIDs []string
	PostedAfter   *time.Time
	Page          int
	PageSize      int
}

type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id string) (*models.Post, error)
	Delete(postID string) error
	FindFeed(filter FeedFilter) ([]models.Post, int64, error)

	// Likes (set semantics via unique index)
	AddLike(postID, userID string) error
	RemoveLike(postID, userID string) error
	CountLikes(postID string) (int64, error)

	// Comments
	AddComment(comment *models.PostComment) error
	FindComments(postID string, page, limit int) ([]models.PostComment, int64, error)
}

type PostRepositoryImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepositoryImpl) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Likes").Preload("Comments").
		Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return &post, err
}

func (r *PostRepositoryImpl) Delete(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostComment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, "id = ?", postID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// FindFeed returns posts the viewer is allowed to see: their own, public
// posts, and connections-only posts from accepted connections.
func (r *PostRepositoryImpl) FindFeed(filter FeedFilter) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})

	if len(filter.ConnectionIDs) > 0 {
		query = query.Where(
			"author_id = ? OR visibility = ? OR (visibility = ? AND author_id IN ?)",
			filter.ViewerID, models.PostVisibilityPublic,
			models.PostVisibilityConnections, filter.ConnectionIDs,
		)
	} else {
		query = query.Where("author_id = ? OR visibility = ?",
			filter.ViewerID, models.PostVisibilityPublic)
	}

	if filter.PostedAfter != nil {
		query = query.Where("created_at >= ?", *filter.PostedAfter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(filter.Page, filter.PageSize, total)

	var posts []models.Post
	err := query.Preload("Author").Preload("Likes").Preload("Comments").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepositoryImpl) AddLike(postID, userID string) error {
	err := r.db.Create(&models.PostLike{PostID: postID, UserID: userID}).Error
	if err != nil && isUniqueViolation(err) {
		return ErrAlreadyLiked
	}
	return err
}

func (r *PostRepositoryImpl) RemoveLike(postID, userID string) error {
	result := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *PostRepositoryImpl) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *PostRepositoryImpl) AddComment(comment *models.PostComment) error {
	return r.db.Create(comment).Error
}

func (r *PostRepositoryImpl) FindComments(postID string, page, limit int) ([]models.PostComment, int64, error) {
	base := r.db.Model(&models.PostComment{}).Where("post_id = ?", postID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(page, limit, total)

	var comments []models.PostComment
	err := base.Preload("User").
		Order("created_at ASC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&comments).Error
	return comments, total, err
}
