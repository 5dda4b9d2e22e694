package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Headline     string
	Bio          string `gorm:"type:text"`
	Location     string
	Skills       datatypes.JSON `gorm:"type:jsonb"` // ordered list of strings
	Resume       datatypes.JSON `gorm:"type:jsonb"` // structured resume parse, optional
	Status       UserStatus     `gorm:"type:varchar(20);default:'active'"`
	IsPremium    bool           `gorm:"default:false"`
	PremiumUntil *time.Time

	// Relations
	Experiences []UserExperience `gorm:"foreignKey:UserID"`
	Educations  []UserEducation  `gorm:"foreignKey:UserID"`
}

// GetSkills decodes the jsonb skills column, preserving order.
func (u *User) GetSkills() []string {
	var skills []string
	if len(u.Skills) > 0 {
		json.Unmarshal(u.Skills, &skills)
	}
	return skills
}

type UserExperience struct {
	BaseModel
	UserID    string `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Company   string
	StartDate *time.Time
	EndDate   *time.Time
	Current   bool `gorm:"default:false"`
}

type UserEducation struct {
	BaseModel
	UserID    string `gorm:"not null;index"`
	School    string `gorm:"not null"`
	Degree    string
	Field     string
	StartYear int
	EndYear   int
}

// Connection is an edge between two users. Status "pending" until the
// recipient accepts. The (requester, recipient) pair is unique.
type Connection struct {
	BaseModel
	RequesterID string `gorm:"not null;uniqueIndex:idx_connection_pair"`
	RecipientID string `gorm:"not null;uniqueIndex:idx_connection_pair"`
	Accepted    bool   `gorm:"default:false"`
	AcceptedAt  *time.Time
}

type SavedJob struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex:idx_saved_job_pair"`
	JobID  string `gorm:"not null;uniqueIndex:idx_saved_job_pair"`
}
