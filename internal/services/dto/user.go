package dto

import (
	"encoding/json"
	"time"

	"chainwork_backend/internal/models"
)

type UpdateProfileRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Headline *string  `json:"headline,omitempty" validate:"omitempty,max=200"`
	Bio      *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location *string  `json:"location,omitempty" validate:"omitempty,max=100"`
	Skills   []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1"`

	Experience []ExperienceEntry `json:"experience,omitempty" validate:"omitempty,dive"`
	Education  []EducationEntry  `json:"education,omitempty" validate:"omitempty,dive"`
}

type ExperienceEntry struct {
	Title     string     `json:"title" validate:"required"`
	Company   string     `json:"company"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Current   bool       `json:"current"`
}

type EducationEntry struct {
	School    string `json:"school" validate:"required"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

type UserQuery struct {
	PageQuery
	Search   string `form:"search"`
	Location string `form:"location"`
	Skill    string `form:"skill"`
}

type GenerateBioRequest struct {
	Keywords []string `json:"keywords,omitempty" validate:"omitempty,max=20"`
}

type ExtractSkillsRequest struct {
	Text string `json:"text" validate:"required,min=10"`
}

// UserResponse is a user read model. The password hash never leaves the
// service layer.
type UserResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email,omitempty"`
	Headline     string            `json:"headline,omitempty"`
	Bio          string            `json:"bio,omitempty"`
	Location     string            `json:"location,omitempty"`
	Skills       []string          `json:"skills"`
	Experience   []ExperienceEntry `json:"experience,omitempty"`
	Education    []EducationEntry  `json:"education,omitempty"`
	Resume       interface{}       `json:"resume,omitempty"`
	IsPremium    bool              `json:"isPremium"`
	PremiumUntil *time.Time        `json:"premiumUntil,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// NewUserResponse builds the read model. includePrivate controls fields
// only the owner should see (email, resume).
func NewUserResponse(user *models.User, includePrivate bool) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Headline:  user.Headline,
		Bio:       user.Bio,
		Location:  user.Location,
		Skills:    user.GetSkills(),
		IsPremium: user.IsPremium,
		CreatedAt: user.CreatedAt,
	}

	if resp.Skills == nil {
		resp.Skills = []string{}
	}

	for _, e := range user.Experiences {
		resp.Experience = append(resp.Experience, ExperienceEntry{
			Title:     e.Title,
			Company:   e.Company,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Current:   e.Current,
		})
	}
	for _, e := range user.Educations {
		resp.Education = append(resp.Education, EducationEntry{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		})
	}

	if includePrivate {
		resp.Email = user.Email
		resp.PremiumUntil = user.PremiumUntil
		if len(user.Resume) > 0 {
			var resume interface{}
			if err := json.Unmarshal(user.Resume, &resume); err == nil {
				resp.Resume = resume
			}
		}
	}

	return resp
}
