package algorithms

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"chainwork_backend/internal/models"
)

func skillsJSON(t *testing.T, skills []string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(skills)
	require.NoError(t, err)
	return datatypes.JSON(raw)
}

func yearsAgo(n float64) *time.Time {
	d := time.Now().Add(-time.Duration(n * 365.25 * 24 * float64(time.Hour)))
	return &d
}

func TestCalculateMatchScore_WorkedExample(t *testing.T) {
	// Candidate skills (Python, React) vs job (python, Vue): one of two job
	// skills matched -> 20. Three years of experience sits inside the mid
	// band [2, 7] -> 30. Remote -> 15. No education -> 5. Total 70.
	candidate := &models.User{
		Skills:   skillsJSON(t, []string{"Python", "React"}),
		Location: "Berlin",
		Experiences: []models.UserExperience{
			{StartDate: yearsAgo(3), Current: true},
		},
	}
	job := &models.Job{
		Skills:          skillsJSON(t, []string{"python", "Vue"}),
		ExperienceLevel: models.ExperienceLevelMid,
		WorkMode:        models.WorkModeRemote,
		Location:        "New York",
	}

	report := CalculateMatchScore(candidate, job)

	assert.Equal(t, 70, report.Score)
	assert.Equal(t, "Strong Match", report.Category)
	assert.Contains(t, report.Strengths[0], "Python")
	assert.Contains(t, report.Gaps, "Missing skill: Vue")
}

func TestScoreCategory_Boundaries(t *testing.T) {
	cases := []struct {
		score    int
		category string
	}{
		{90, "Gold Match"},
		{89, "Strong Match"},
		{70, "Strong Match"},
		{69, "Good Match"},
		{50, "Good Match"},
		{49, "Partial Match"},
		{100, "Gold Match"},
		{0, "Partial Match"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.category, ScoreCategory(tc.score), "score %d", tc.score)
	}
}

func TestExperienceScore_Bands(t *testing.T) {
	// 3 years, mid band [2,5]+2 -> 30.
	assert.Equal(t, 30.0, experienceScore(3, models.ExperienceLevelMid))
	// 7 years is still inside max+2 for mid -> 30.
	assert.Equal(t, 30.0, experienceScore(7, models.ExperienceLevelMid))
	// 8 years is above the tolerated mid band -> 20.
	assert.Equal(t, 20.0, experienceScore(8, models.ExperienceLevelMid))
	// 1 year is below the senior minimum -> 0.
	assert.Equal(t, 0.0, experienceScore(1, models.ExperienceLevelSenior))
	// Entry level accepts zero years.
	assert.Equal(t, 30.0, experienceScore(0, models.ExperienceLevelEntry))
	// Unknown level falls back to the mid band.
	assert.Equal(t, 30.0, experienceScore(3, models.ExperienceLevel("unknown")))
}

func TestTotalExperienceYears(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	entries := []models.UserExperience{
		{StartDate: &start, EndDate: &end},    // one year
		{StartDate: &end, Current: true},      // two years, runs until now
		{EndDate: &end},                       // missing start -> 2020-01-01
	}

	total := TotalExperienceYears(entries, now)
	assert.InDelta(t, 1+2+4, total, 0.05)
}

func TestCalculateMatchScore_NoJobSkills(t *testing.T) {
	// A job with no listed skills must not divide by zero; the skill
	// contribution is simply zero matches over max(0,1).
	candidate := &models.User{
		Skills:    skillsJSON(t, []string{"Go"}),
		Location:  "Remote",
		Educations: []models.UserEducation{{School: "MIT"}},
	}
	job := &models.Job{
		ExperienceLevel: models.ExperienceLevelEntry,
		WorkMode:        models.WorkModeRemote,
	}

	report := CalculateMatchScore(candidate, job)
	// skills 0 + experience 30 (entry accepts 0y) + location 15 + education 15.
	assert.Equal(t, 60, report.Score)
	assert.Equal(t, "Good Match", report.Category)
}

func TestCalculateMatchScore_LocationSubstring(t *testing.T) {
	candidate := &models.User{
		Skills:   skillsJSON(t, []string{"Go"}),
		Location: "berlin",
	}
	job := &models.Job{
		Skills:          skillsJSON(t, []string{"Go"}),
		ExperienceLevel: models.ExperienceLevelEntry,
		WorkMode:        models.WorkModeOnsite,
		Location:        "Berlin, Germany",
	}

	report := CalculateMatchScore(candidate, job)
	// skills 40 + experience 30 + location 15 + education 5.
	assert.Equal(t, 90, report.Score)
	assert.Equal(t, "Gold Match", report.Category)
}
