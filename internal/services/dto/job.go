package dto

import (
	"time"

	"chainwork_backend/internal/models"
)

type CreateJobRequest struct {
	Title           string     `json:"title" validate:"required,min=3,max=200"`
	Company         string     `json:"company" validate:"required,min=2,max=200"`
	Description     string     `json:"description" validate:"required,min=10"`
	Location        string     `json:"location"`
	JobType         string     `json:"jobType" validate:"omitempty,oneof=full-time part-time contract internship"`
	WorkMode        string     `json:"workMode" validate:"omitempty,oneof=onsite remote hybrid"`
	ExperienceLevel string     `json:"experienceLevel" validate:"omitempty,oneof=entry mid senior lead"`
	Skills          []string   `json:"skills" validate:"omitempty,max=50,dive,min=1"`
	SalaryMin       float64    `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax       float64    `json:"salaryMax" validate:"omitempty,min=0"`
	Currency        string     `json:"currency"`
	Draft           bool       `json:"draft"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
}

type UpdateJobRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Location        *string  `json:"location,omitempty"`
	JobType         *string  `json:"jobType,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	WorkMode        *string  `json:"workMode,omitempty" validate:"omitempty,oneof=onsite remote hybrid"`
	ExperienceLevel *string  `json:"experienceLevel,omitempty" validate:"omitempty,oneof=entry mid senior lead"`
	Skills          []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=active closed draft"`
}

type JobQuery struct {
	PageQuery
	Search          string `form:"search"`
	Location        string `form:"location"`
	JobType         string `form:"jobType" validate:"omitempty,oneof=full-time part-time contract internship"`
	WorkMode        string `form:"workMode" validate:"omitempty,oneof=onsite remote hybrid"`
	ExperienceLevel string `form:"experienceLevel" validate:"omitempty,oneof=entry mid senior lead"`
	Window          string `form:"window" validate:"omitempty,oneof=1h 24h week month"`
}

type ApplyJobRequest struct {
	CoverLetter string `json:"coverLetter" validate:"omitempty,max=5000"`
	ResumeURL   string `json:"resumeUrl" validate:"omitempty,url"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}

type CoverLetterRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=1000"`
}

type JobResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Description     string     `json:"description"`
	Location        string     `json:"location,omitempty"`
	JobType         string     `json:"jobType,omitempty"`
	WorkMode        string     `json:"workMode,omitempty"`
	ExperienceLevel string     `json:"experienceLevel,omitempty"`
	Skills          []string   `json:"skills"`
	SalaryMin       float64    `json:"salaryMin,omitempty"`
	SalaryMax       float64    `json:"salaryMax,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	PostedByID      string     `json:"postedBy"`
	PaymentVerified bool       `json:"paymentVerified"`
	Status          string     `json:"status"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	skills := job.GetSkills()
	if skills == nil {
		skills = []string{}
	}
	return &JobResponse{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Description:     job.Description,
		Location:        job.Location,
		JobType:         string(job.JobType),
		WorkMode:        string(job.WorkMode),
		ExperienceLevel: string(job.ExperienceLevel),
		Skills:          skills,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		Currency:        job.Currency,
		PostedByID:      job.PostedByID,
		PaymentVerified: job.PaymentVerified,
		Status:          string(job.Status),
		ExpiresAt:       job.ExpiresAt,
		CreatedAt:       job.CreatedAt,
	}
}

type ApplicationResponse struct {
	JobID       string        `json:"jobId"`
	UserID      string        `json:"userId"`
	AppliedAt   time.Time     `json:"appliedAt"`
	Status      string        `json:"status"`
	CoverLetter string        `json:"coverLetter,omitempty"`
	ResumeURL   string        `json:"resumeUrl,omitempty"`
	Applicant   *UserResponse `json:"applicant,omitempty"`
	Job         *JobResponse  `json:"job,omitempty"`
}

func NewApplicationResponse(app *models.JobApplication) *ApplicationResponse {
	resp := &ApplicationResponse{
		JobID:       app.JobID,
		UserID:      app.UserID,
		AppliedAt:   app.AppliedAt,
		Status:      string(app.Status),
		CoverLetter: app.CoverLetter,
		ResumeURL:   app.ResumeURL,
	}
	if app.User != nil {
		resp.Applicant = NewUserResponse(app.User, false)
	}
	if app.Job != nil {
		resp.Job = NewJobResponse(app.Job)
	}
	return resp
}
