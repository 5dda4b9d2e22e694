package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo overrides only FindByID; the embedded nil interface covers
// methods the matching service never calls.
type stubUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (s *stubUserRepo) FindByID(id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, repositories.ErrUserNotFound
	}
	return s.user, nil
}

type stubJobRepo struct {
	repositories.JobRepository
	job *models.Job
}

func (s *stubJobRepo) FindByID(id string) (*models.Job, error) {
	if s.job == nil || s.job.ID != id {
		return nil, repositories.ErrJobNotFound
	}
	return s.job, nil
}

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func (s *stubGenerator) Model() string { return "stub" }

func matchFixtures(t *testing.T) (*models.User, *models.Job) {
	t.Helper()

	skills, err := json.Marshal([]string{"Go", "PostgreSQL"})
	require.NoError(t, err)

	start := time.Now().AddDate(-3, 0, 0)
	user := &models.User{
		Skills:   skills,
		Location: "Berlin",
		Experiences: []models.UserExperience{
			{Title: "Backend Engineer", StartDate: &start, Current: true},
		},
	}
	user.ID = uuid.NewString()

	job := &models.Job{
		Title:           "Go Developer",
		Skills:          skills,
		WorkMode:        models.WorkModeRemote,
		ExperienceLevel: models.ExperienceLevelMid,
	}
	job.ID = uuid.NewString()
	return user, job
}

func TestMatchScore_AIPrimaryPath(t *testing.T) {
	user, job := matchFixtures(t)
	gen := &stubGenerator{response: `Here you go:
{"score": 84, "category": "Strong Match", "strengths": ["Go"], "gaps": [], "recommendation": "Apply."}`}
	svc := NewMatchingService(gen, &stubUserRepo{user: user}, &stubJobRepo{job: job})

	report, err := svc.Score(context.Background(), user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 84, report.Score)
	assert.Equal(t, "Strong Match", report.Category)
}

func TestMatchScore_FallbackOnAIError(t *testing.T) {
	user, job := matchFixtures(t)
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := NewMatchingService(gen, &stubUserRepo{user: user}, &stubJobRepo{job: job})

	// All job skills matched (40), 3y in the mid band (30), remote (15),
	// no education (5) -> 90 Gold Match from the heuristic.
	report, err := svc.Score(context.Background(), user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, report.Score)
	assert.Equal(t, "Gold Match", report.Category)
}

func TestMatchScore_FallbackOnGarbageCompletion(t *testing.T) {
	user, job := matchFixtures(t)
	gen := &stubGenerator{response: "I cannot answer that."}
	svc := NewMatchingService(gen, &stubUserRepo{user: user}, &stubJobRepo{job: job})

	report, err := svc.Score(context.Background(), user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, report.Score)
}

func TestMatchScore_FallbackOnOutOfRangeScore(t *testing.T) {
	user, job := matchFixtures(t)
	gen := &stubGenerator{response: `{"score": 420, "category": "Gold Match"}`}
	svc := NewMatchingService(gen, &stubUserRepo{user: user}, &stubJobRepo{job: job})

	report, err := svc.Score(context.Background(), user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, report.Score)
}

func TestMatchScore_UnknownJob(t *testing.T) {
	user, _ := matchFixtures(t)
	svc := NewMatchingService(&stubGenerator{}, &stubUserRepo{user: user}, &stubJobRepo{})

	_, err := svc.Score(context.Background(), user.ID, uuid.NewString())
	require.Error(t, err)
}
