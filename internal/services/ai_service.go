package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chainwork_backend/internal/ai"
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/pkg/apperrors"
)

// AIService wraps the text generation model for profile and job features.
// Every operation tolerates sloppy model output: completions are scanned for
// the first balanced JSON span, with plain-text fallbacks where the shape
// allows.
type AIService interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
	ParseResume(ctx context.Context, userID string, text string) (map[string]interface{}, error)
	GenerateBio(ctx context.Context, userID string, keywords []string) (string, error)
	GenerateCoverLetter(ctx context.Context, userID, jobID, notes string) (string, error)
	EnhanceJobDescription(ctx context.Context, ownerID, jobID string) (string, error)
}

type AIServiceImpl struct {
	generator ai.ContentGenerator
	userRepo  repositories.UserRepository
	jobRepo   repositories.JobRepository
}

func NewAIService(generator ai.ContentGenerator, userRepo repositories.UserRepository, jobRepo repositories.JobRepository) AIService {
	return &AIServiceImpl{
		generator: generator,
		userRepo:  userRepo,
		jobRepo:   jobRepo,
	}
}

func (s *AIServiceImpl) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	raw, err := s.generate(ctx, "extract_skills", ai.ExtractSkillsPrompt(text))
	if err != nil {
		return nil, apperrors.ErrAIService(err)
	}

	skills := ai.ExtractStringList(raw)
	if len(skills) == 0 {
		return nil, apperrors.ErrAIService(errors.New("no skills in completion"))
	}
	return skills, nil
}

// ParseResume extracts a structured resume from raw text and stores it on
// the profile. Extracted skills are merged into the skills column.
func (s *AIServiceImpl) ParseResume(ctx context.Context, userID string, text string) (map[string]interface{}, error) {
	raw, err := s.generate(ctx, "parse_resume", ai.ParseResumePrompt(text))
	if err != nil {
		return nil, apperrors.ErrAIService(err)
	}

	var parsed map[string]interface{}
	if err := ai.ExtractJSONObject(raw, &parsed); err != nil {
		return nil, apperrors.ErrAIService(err)
	}

	resumeJSON, err := json.Marshal(parsed)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	fields := map[string]interface{}{"resume": resumeJSON}

	if skills := stringSlice(parsed["skills"]); len(skills) > 0 {
		skillsJSON, err := json.Marshal(skills)
		if err == nil {
			fields["skills"] = skillsJSON
		}
	}

	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return parsed, nil
}

func (s *AIServiceImpl) GenerateBio(ctx context.Context, userID string, keywords []string) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	skills := user.GetSkills()
	if len(keywords) > 0 {
		skills = append(skills, keywords...)
	}

	raw, err := s.generate(ctx, "generate_bio", ai.GenerateBioPrompt(user.Name, user.Headline, skills))
	if err != nil {
		return "", apperrors.ErrAIService(err)
	}
	return ai.CleanText(raw), nil
}

func (s *AIServiceImpl) GenerateCoverLetter(ctx context.Context, userID, jobID, notes string) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	job, err := s.jobRepo.FindByID(jobID)
	if errors.Is(err, repositories.ErrJobNotFound) {
		return "", apperrors.ErrNotFound(err)
	}
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	description := job.Description
	if notes != "" {
		description += "\n\nCandidate notes: " + notes
	}
	prompt := ai.GenerateCoverLetterPrompt(user.Name, user.Headline, user.GetSkills(), job.Title, job.Company, description)

	raw, err := s.generate(ctx, "generate_cover_letter", prompt)
	if err != nil {
		return "", apperrors.ErrAIService(err)
	}
	return ai.CleanText(raw), nil
}

func (s *AIServiceImpl) EnhanceJobDescription(ctx context.Context, ownerID, jobID string) (string, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if errors.Is(err, repositories.ErrJobNotFound) {
		return "", apperrors.ErrNotFound(err)
	}
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if job.PostedByID != ownerID {
		return "", apperrors.ErrNotFoundOrUnauthorized(repositories.ErrJobNotFound)
	}

	raw, err := s.generate(ctx, "enhance_job_description", ai.EnhanceJobDescriptionPrompt(job.Title, job.Description))
	if err != nil {
		return "", apperrors.ErrAIService(err)
	}
	return ai.CleanText(raw), nil
}

func (s *AIServiceImpl) generate(ctx context.Context, operation, prompt string) (string, error) {
	start := time.Now()
	raw, err := s.generator.GenerateContent(ctx, prompt)
	logger.AILog(operation, s.generator.Model(), time.Since(start), err)
	return raw, err
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
