package repositories

import (
	"errors"
	"strings"
	"time"

	"chainwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("user already applied to this job")
)

type JobFilter struct {
	Search          string
	Location        string
	JobType         models.JobType
	WorkMode        models.WorkMode
	ExperienceLevel models.ExperienceLevel
	PostedAfter     *time.Time
	Status          models.JobStatus
	PostedByID      string
	Page            int
	PageSize        int
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	Update(job *models.Job) error
	UpdateFields(jobID string, fields map[string]interface{}) error
	Delete(jobID string) error
	FindWithFilter(filter JobFilter) ([]models.Job, int64, error)

	// Applications. CreateApplication relies on the (job_id, user_id)
	// unique index: a single conditional write, no check-then-write race.
	CreateApplication(app *models.JobApplication) error
	FindApplication(jobID, userID string) (*models.JobApplication, error)
	FindApplicants(jobID string, page, limit int) ([]models.JobApplication, int64, error)
	FindUserApplications(userID string, page, limit int) ([]models.JobApplication, int64, error)
	UpdateApplicationStatus(jobID, userID string, status models.ApplicationStatus) error
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	return &job, err
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) UpdateFields(jobID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", jobID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(jobID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Job{}, "id = ?", jobID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) FindWithFilter(filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PostedByID != "" {
		query = query.Where("posted_by_id = ?", filter.PostedByID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.JobType != "" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.WorkMode != "" {
		query = query.Where("work_mode = ?", filter.WorkMode)
	}
	if filter.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", filter.ExperienceLevel)
	}
	if filter.PostedAfter != nil {
		query = query.Where("created_at >= ?", *filter.PostedAfter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(filter.Page, filter.PageSize, total)

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&jobs).Error
	return jobs, total, err
}

// ---------------- Applications ----------------

func (r *JobRepositoryImpl) CreateApplication(app *models.JobApplication) error {
	err := r.db.Create(app).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *JobRepositoryImpl) FindApplication(jobID, userID string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.Where("job_id = ? AND user_id = ?", jobID, userID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	return &app, err
}

func (r *JobRepositoryImpl) FindApplicants(jobID string, page, limit int) ([]models.JobApplication, int64, error) {
	base := r.db.Model(&models.JobApplication{}).Where("job_id = ?", jobID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(page, limit, total)

	var apps []models.JobApplication
	err := base.Preload("User").
		Order("applied_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&apps).Error
	return apps, total, err
}

func (r *JobRepositoryImpl) FindUserApplications(userID string, page, limit int) ([]models.JobApplication, int64, error) {
	base := r.db.Model(&models.JobApplication{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(page, limit, total)

	var apps []models.JobApplication
	err := base.Preload("Job").
		Order("applied_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&apps).Error
	return apps, total, err
}

func (r *JobRepositoryImpl) UpdateApplicationStatus(jobID, userID string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.JobApplication{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
