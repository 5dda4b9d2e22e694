package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title           string `gorm:"not null"`
	Company         string `gorm:"not null"`
	Description     string `gorm:"type:text"`
	Location        string
	JobType         JobType         `gorm:"type:varchar(20)"`
	WorkMode        WorkMode        `gorm:"type:varchar(20)"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20)"`
	Skills          datatypes.JSON  `gorm:"type:jsonb"` // ordered list of strings
	SalaryMin       float64
	SalaryMax       float64
	Currency        string
	PostedByID      string    `gorm:"not null;index"`
	PaymentVerified bool      `gorm:"default:false"`
	Status          JobStatus `gorm:"type:varchar(20);default:'active'"`
	ExpiresAt       *time.Time

	Applications []JobApplication `gorm:"foreignKey:JobID"`
}

// GetSkills decodes the jsonb skills column, preserving order.
func (j *Job) GetSkills() []string {
	var skills []string
	if len(j.Skills) > 0 {
		json.Unmarshal(j.Skills, &skills)
	}
	return skills
}

// JobApplication holds one application per (job, user) pair. The composite
// unique index closes the duplicate-apply race at the store level instead of
// relying on a check-then-write.
type JobApplication struct {
	BaseModel
	JobID       string            `gorm:"not null;uniqueIndex:idx_job_applicant"`
	UserID      string            `gorm:"not null;uniqueIndex:idx_job_applicant"`
	AppliedAt   time.Time         `gorm:"default:now()"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending'"`
	CoverLetter string            `gorm:"type:text"`
	ResumeURL   string

	User *User `gorm:"foreignKey:UserID"`
	Job  *Job  `gorm:"foreignKey:JobID"`
}
