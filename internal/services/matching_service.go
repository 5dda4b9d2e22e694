package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chainwork_backend/internal/ai"
	"chainwork_backend/internal/algorithms"
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/pkg/apperrors"
)

// MatchingService scores a candidate against a job. The AI model is the
// primary scorer; any failure (call error, unparseable completion, score
// outside 0-100) degrades silently to the deterministic heuristic.
type MatchingService interface {
	Score(ctx context.Context, candidateID, jobID string) (*algorithms.MatchReport, error)
}

type MatchingServiceImpl struct {
	generator ai.ContentGenerator
	userRepo  repositories.UserRepository
	jobRepo   repositories.JobRepository
}

func NewMatchingService(generator ai.ContentGenerator, userRepo repositories.UserRepository, jobRepo repositories.JobRepository) MatchingService {
	return &MatchingServiceImpl{
		generator: generator,
		userRepo:  userRepo,
		jobRepo:   jobRepo,
	}
}

func (s *MatchingServiceImpl) Score(ctx context.Context, candidateID, jobID string) (*algorithms.MatchReport, error) {
	candidate, err := s.userRepo.FindByID(candidateID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if errors.Is(err, repositories.ErrJobNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if report, err := s.scoreWithAI(ctx, candidate, job); err == nil {
		return report, nil
	} else {
		logger.WithError(err).Warn("AI match scoring failed, using fallback",
			"candidate_id", candidateID, "job_id", jobID)
	}

	return algorithms.CalculateMatchScore(candidate, job), nil
}

func (s *MatchingServiceImpl) scoreWithAI(ctx context.Context, candidate *models.User, job *models.Job) (*algorithms.MatchReport, error) {
	candidateJSON, err := json.Marshal(map[string]interface{}{
		"headline":   candidate.Headline,
		"bio":        candidate.Bio,
		"location":   candidate.Location,
		"skills":     candidate.GetSkills(),
		"experience": candidate.Experiences,
		"education":  candidate.Educations,
	})
	if err != nil {
		return nil, err
	}
	jobJSON, err := json.Marshal(map[string]interface{}{
		"title":           job.Title,
		"description":     job.Description,
		"location":        job.Location,
		"workMode":        job.WorkMode,
		"experienceLevel": job.ExperienceLevel,
		"skills":          job.GetSkills(),
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := s.generator.GenerateContent(ctx, ai.MatchScorePrompt(string(candidateJSON), string(jobJSON)))
	logger.AILog("match_score", s.generator.Model(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	var report algorithms.MatchReport
	if err := ai.ExtractJSONObject(raw, &report); err != nil {
		return nil, err
	}
	if report.Score < 0 || report.Score > 100 {
		return nil, errors.New("model score out of range")
	}
	if report.Category == "" {
		report.Category = algorithms.ScoreCategory(report.Score)
	}
	return &report, nil
}
