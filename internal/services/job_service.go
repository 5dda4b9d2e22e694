package services

import (
	"encoding/json"
	"errors"

	"chainwork_backend/internal/email"
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"
)

// JobService manages job postings and applications. A job becomes visible
// (status active) only after a job_posting payment is recorded for it;
// until then it stays a draft.
type JobService interface {
	Create(posterID string, req dto.CreateJobRequest) (*dto.JobResponse, error)
	Get(jobID string) (*dto.JobResponse, error)
	Update(ownerID, jobID string, req dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(ownerID, jobID string) error
	List(query dto.JobQuery) ([]dto.JobResponse, repositories.Pagination, error)
	ListMine(ownerID string, page, limit int) ([]dto.JobResponse, repositories.Pagination, error)

	// Publish flips a draft to active after payment. Called by the payment
	// service, not exposed over HTTP directly.
	Publish(jobID string) error

	Apply(applicantID, jobID string, req dto.ApplyJobRequest) (*dto.ApplicationResponse, error)
	ListApplicants(ownerID, jobID string, page, limit int) ([]dto.ApplicationResponse, repositories.Pagination, error)
	ListMyApplications(userID string, page, limit int) ([]dto.ApplicationResponse, repositories.Pagination, error)
	UpdateApplicationStatus(ownerID, jobID, applicantID string, req dto.UpdateApplicationStatusRequest) error
}

type JobServiceImpl struct {
	jobRepo      repositories.JobRepository
	userRepo     repositories.UserRepository
	notification NotificationService
	mailer       email.Sender
}

func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository, notification NotificationService, mailer email.Sender) JobService {
	return &JobServiceImpl{
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		notification: notification,
		mailer:       mailer,
	}
}

func (s *JobServiceImpl) Create(posterID string, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	// A job cannot go live at creation time: publishing requires a recorded
	// payment, which references the job ID.
	if !req.Draft {
		return nil, apperrors.ErrJobNotPayable
	}
	if req.SalaryMax > 0 && req.SalaryMin > req.SalaryMax {
		return nil, apperrors.NewBadRequestError("salaryMin must not exceed salaryMax")
	}

	job := &models.Job{
		Title:           req.Title,
		Company:         req.Company,
		Description:     req.Description,
		Location:        req.Location,
		JobType:         models.JobType(req.JobType),
		WorkMode:        models.WorkMode(req.WorkMode),
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Currency:        req.Currency,
		PostedByID:      posterID,
		Status:          models.JobStatusDraft,
		ExpiresAt:       req.ExpiresAt,
	}
	if len(req.Skills) > 0 {
		raw, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Skills = raw
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) Get(jobID string) (*dto.JobResponse, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) Update(ownerID, jobID string, req dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(ownerID, jobID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.JobType != nil {
		fields["job_type"] = *req.JobType
	}
	if req.WorkMode != nil {
		fields["work_mode"] = *req.WorkMode
	}
	if req.ExperienceLevel != nil {
		fields["experience_level"] = *req.ExperienceLevel
	}
	if req.Skills != nil {
		raw, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["skills"] = raw
	}
	if req.Status != nil {
		if models.JobStatus(*req.Status) == models.JobStatusActive && !job.PaymentVerified {
			return nil, apperrors.ErrJobNotPayable
		}
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.jobRepo.UpdateFields(jobID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	job, err = s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) Delete(ownerID, jobID string) error {
	if _, err := s.findOwnedJob(ownerID, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) List(query dto.JobQuery) ([]dto.JobResponse, repositories.Pagination, error) {
	postedAfter, ok := dto.ParseWindow(query.Window, timeNow())
	if !ok {
		return nil, repositories.Pagination{}, apperrors.NewBadRequestError("unknown window token: " + query.Window)
	}

	filter := repositories.JobFilter{
		Search:          query.Search,
		Location:        query.Location,
		JobType:         models.JobType(query.JobType),
		WorkMode:        models.WorkMode(query.WorkMode),
		ExperienceLevel: models.ExperienceLevel(query.ExperienceLevel),
		PostedAfter:     postedAfter,
		Status:          models.JobStatusActive,
		Page:            query.Page,
		PageSize:        query.Limit,
	}
	jobs, total, err := s.jobRepo.FindWithFilter(filter)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}
	return jobResponses(jobs), repositories.NewPagination(query.Page, query.Limit, total), nil
}

func (s *JobServiceImpl) ListMine(ownerID string, page, limit int) ([]dto.JobResponse, repositories.Pagination, error) {
	filter := repositories.JobFilter{
		PostedByID: ownerID,
		Page:       page,
		PageSize:   limit,
	}
	jobs, total, err := s.jobRepo.FindWithFilter(filter)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}
	return jobResponses(jobs), repositories.NewPagination(page, limit, total), nil
}

// Publish marks the job paid and active, then fans out a job_posted
// notification to the poster's accepted connections.
func (s *JobServiceImpl) Publish(jobID string) error {
	job, err := s.findJob(jobID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"payment_verified": true,
		"status":           models.JobStatusActive,
	}
	if err := s.jobRepo.UpdateFields(jobID, fields); err != nil {
		return apperrors.InternalError(err)
	}

	connectionIDs, err := s.userRepo.FindAcceptedConnectionIDs(job.PostedByID)
	if err != nil {
		// Fan-out is best effort; publishing already succeeded.
		logger.WithError(err).Warn("job publish fan-out skipped", "job_id", jobID)
		return nil
	}
	s.notification.NotifyJobPosted(job, connectionIDs)
	return nil
}

func (s *JobServiceImpl) Apply(applicantID, jobID string, req dto.ApplyJobRequest) (*dto.ApplicationResponse, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrInvalidOperation("job", "Job is not accepting applications")
	}
	if job.PostedByID == applicantID {
		return nil, apperrors.ErrInvalidOperation("job", "Cannot apply to your own job")
	}

	application := &models.JobApplication{
		JobID:       jobID,
		UserID:      applicantID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		AppliedAt:   timeNow(),
	}
	if err := s.jobRepo.CreateApplication(application); err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	s.notification.NotifyApplicationReceived(job, applicantID)
	s.emailApplicationReceived(job, applicantID)

	return dto.NewApplicationResponse(application), nil
}

func (s *JobServiceImpl) ListApplicants(ownerID, jobID string, page, limit int) ([]dto.ApplicationResponse, repositories.Pagination, error) {
	if _, err := s.findOwnedJob(ownerID, jobID); err != nil {
		return nil, repositories.Pagination{}, err
	}

	apps, total, err := s.jobRepo.FindApplicants(jobID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}
	return applicationResponses(apps), repositories.NewPagination(page, limit, total), nil
}

func (s *JobServiceImpl) ListMyApplications(userID string, page, limit int) ([]dto.ApplicationResponse, repositories.Pagination, error) {
	apps, total, err := s.jobRepo.FindUserApplications(userID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}
	return applicationResponses(apps), repositories.NewPagination(page, limit, total), nil
}

func (s *JobServiceImpl) UpdateApplicationStatus(ownerID, jobID, applicantID string, req dto.UpdateApplicationStatusRequest) error {
	if _, err := s.findOwnedJob(ownerID, jobID); err != nil {
		return err
	}

	err := s.jobRepo.UpdateApplicationStatus(jobID, applicantID, models.ApplicationStatus(req.Status))
	if errors.Is(err, repositories.ErrApplicationNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) findJob(jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if errors.Is(err, repositories.ErrJobNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// findOwnedJob hides other people's jobs behind the same not-found error.
func (s *JobServiceImpl) findOwnedJob(ownerID, jobID string) (*models.Job, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedByID != ownerID {
		return nil, apperrors.ErrNotFoundOrUnauthorized(repositories.ErrJobNotFound)
	}
	return job, nil
}

func (s *JobServiceImpl) emailApplicationReceived(job *models.Job, applicantID string) {
	go func() {
		applicant, err := s.userRepo.FindByID(applicantID)
		if err != nil {
			logger.WithError(err).Warn("application email skipped", "job_id", job.ID)
			return
		}
		owner, err := s.userRepo.FindByID(job.PostedByID)
		if err != nil {
			logger.WithError(err).Warn("application email skipped", "job_id", job.ID)
			return
		}
		body := email.ApplicationReceivedBody(job.Title, applicant.Name)
		if err := s.mailer.Send(owner.Email, "New application: "+job.Title, body); err != nil {
			logger.WithError(err).Warn("application email failed", "job_id", job.ID)
		}
	}()
}

func jobResponses(jobs []models.Job) []dto.JobResponse {
	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i]))
	}
	return responses
}

func applicationResponses(apps []models.JobApplication) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, *dto.NewApplicationResponse(&apps[i]))
	}
	return responses
}
