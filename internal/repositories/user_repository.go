package repositories

import (
	"errors"
	"strings"
	"time"

	"chainwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrDuplicateConnection  = errors.New("connection already exists")
	ErrSavedJobAlreadySaved = errors.New("job already saved")
	ErrSavedJobNotFound     = errors.New("saved job not found")
)

type UserFilter struct {
	Search   string
	Location string
	Skill    string
	Page     int
	PageSize int
}

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateFields(userID string, fields map[string]interface{}) error
	Delete(userID string) error
	FindWithFilter(filter UserFilter) ([]models.User, int64, error)

	// Experience / education
	ReplaceExperiences(userID string, entries []models.UserExperience) error
	ReplaceEducations(userID string, entries []models.UserEducation) error

	// Connections (unordered pair semantics)
	CreateConnection(requesterID, recipientID string) (*models.Connection, error)
	AcceptConnection(recipientID, requesterID string) (*models.Connection, error)
	DeleteConnection(userID, otherID string) error
	FindConnection(userID, otherID string) (*models.Connection, error)
	FindAcceptedConnectionIDs(userID string) ([]string, error)
	FindConnections(userID string, page, limit int) ([]models.User, int64, error)

	// Saved jobs
	SaveJob(userID, jobID string) error
	UnsaveJob(userID, jobID string) error
	FindSavedJobs(userID string, page, limit int) ([]models.Job, int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Experiences").Preload("Educations").
		Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateFields(userID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Delete(&models.User{}, "id = ?", userID).Error
}

func (r *UserRepositoryImpl) FindWithFilter(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(headline) LIKE ?", pattern, pattern)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Skill != "" {
		query = query.Where("skills::text ILIKE ?", "%"+filter.Skill+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(filter.Page, filter.PageSize, total)

	var users []models.User
	err := query.Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) ReplaceExperiences(userID string, entries []models.UserExperience) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserExperience{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].UserID = userID
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *UserRepositoryImpl) ReplaceEducations(userID string, entries []models.UserEducation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserEducation{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].UserID = userID
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// ---------------- Connections ----------------

func (r *UserRepositoryImpl) CreateConnection(requesterID, recipientID string) (*models.Connection, error) {
	// A pending or accepted edge in either direction blocks a new request.
	var existing models.Connection
	err := r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		requesterID, recipientID, recipientID, requesterID,
	).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateConnection
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conn := &models.Connection{RequesterID: requesterID, RecipientID: recipientID}
	if err := r.db.Create(conn).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateConnection
		}
		return nil, err
	}
	return conn, nil
}

func (r *UserRepositoryImpl) AcceptConnection(recipientID, requesterID string) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.Where("requester_id = ? AND recipient_id = ? AND accepted = false",
		requesterID, recipientID).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	conn.Accepted = true
	conn.AcceptedAt = &now
	if err := r.db.Save(&conn).Error; err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *UserRepositoryImpl) DeleteConnection(userID, otherID string) error {
	result := r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		userID, otherID, otherID, userID,
	).Delete(&models.Connection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindConnection(userID, otherID string) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		userID, otherID, otherID, userID,
	).First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConnectionNotFound
	}
	return &conn, err
}

func (r *UserRepositoryImpl) FindAcceptedConnectionIDs(userID string) ([]string, error) {
	var conns []models.Connection
	err := r.db.Where("(requester_id = ? OR recipient_id = ?) AND accepted = true", userID, userID).
		Find(&conns).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(conns))
	for _, c := range conns {
		if c.RequesterID == userID {
			ids = append(ids, c.RecipientID)
		} else {
			ids = append(ids, c.RequesterID)
		}
	}
	return ids, nil
}

func (r *UserRepositoryImpl) FindConnections(userID string, page, limit int) ([]models.User, int64, error) {
	ids, err := r.FindAcceptedConnectionIDs(userID)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []models.User{}, 0, nil
	}

	total := int64(len(ids))
	p := NewPagination(page, limit, total)

	var users []models.User
	err = r.db.Where("id IN ?", ids).
		Order("name ASC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&users).Error
	return users, total, err
}

// ---------------- Saved jobs ----------------

func (r *UserRepositoryImpl) SaveJob(userID, jobID string) error {
	err := r.db.Create(&models.SavedJob{UserID: userID, JobID: jobID}).Error
	if err != nil && isUniqueViolation(err) {
		return ErrSavedJobAlreadySaved
	}
	return err
}

func (r *UserRepositoryImpl) UnsaveJob(userID, jobID string) error {
	result := r.db.Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.SavedJob{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSavedJobNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindSavedJobs(userID string, page, limit int) ([]models.Job, int64, error) {
	base := r.db.Model(&models.Job{}).
		Joins("JOIN saved_jobs ON saved_jobs.job_id = jobs.id").
		Where("saved_jobs.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(page, limit, total)

	var jobs []models.Job
	err := base.Order("saved_jobs.created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&jobs).Error
	return jobs, total, err
}

// isUniqueViolation detects a unique-constraint failure from the driver.
// GORM exposes ErrDuplicatedKey for postgres with the translation layer on;
// the string check covers drivers without error translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
