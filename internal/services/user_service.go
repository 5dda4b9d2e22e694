package services

import (
	"encoding/json"
	"errors"

	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(viewerID, userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	Search(query dto.UserQuery) ([]dto.UserResponse, repositories.Pagination, error)
	DeleteAccount(userID string) error

	RequestConnection(requesterID, recipientID string) error
	AcceptConnection(recipientID, requesterID string) error
	RemoveConnection(userID, otherID string) error
	ListConnections(userID string, page, limit int) ([]dto.UserResponse, repositories.Pagination, error)

	SaveJob(userID, jobID string) error
	UnsaveJob(userID, jobID string) error
	ListSavedJobs(userID string, page, limit int) ([]dto.JobResponse, repositories.Pagination, error)
}

type UserServiceImpl struct {
	userRepo     repositories.UserRepository
	jobRepo      repositories.JobRepository
	notification NotificationService
}

func NewUserService(userRepo repositories.UserRepository, jobRepo repositories.JobRepository, notification NotificationService) UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		jobRepo:      jobRepo,
		notification: notification,
	}
}

// GetProfile returns a profile. Private fields (email, resume) are included
// only when the viewer is the profile owner. Viewing someone else's profile
// sends a profile_viewed notification.
func (s *UserServiceImpl) GetProfile(viewerID, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	isOwner := viewerID == userID
	if !isOwner && viewerID != "" {
		s.notification.NotifyProfileViewed(userID, viewerID)
	}
	return dto.NewUserResponse(user, isOwner), nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Headline != nil {
		fields["headline"] = *req.Headline
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Skills != nil {
		raw, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["skills"] = raw
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
	}

	if req.Experience != nil {
		entries := make([]models.UserExperience, 0, len(req.Experience))
		for _, e := range req.Experience {
			entries = append(entries, models.UserExperience{
				UserID:    userID,
				Title:     e.Title,
				Company:   e.Company,
				StartDate: e.StartDate,
				EndDate:   e.EndDate,
				Current:   e.Current,
			})
		}
		if err := s.userRepo.ReplaceExperiences(userID, entries); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if req.Education != nil {
		entries := make([]models.UserEducation, 0, len(req.Education))
		for _, e := range req.Education {
			entries = append(entries, models.UserEducation{
				UserID:    userID,
				School:    e.School,
				Degree:    e.Degree,
				Field:     e.Field,
				StartYear: e.StartYear,
				EndYear:   e.EndYear,
			})
		}
		if err := s.userRepo.ReplaceEducations(userID, entries); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user, true), nil
}

func (s *UserServiceImpl) Search(query dto.UserQuery) ([]dto.UserResponse, repositories.Pagination, error) {
	filter := repositories.UserFilter{
		Search:   query.Search,
		Location: query.Location,
		Skill:    query.Skill,
		Page:     query.Page,
		PageSize: query.Limit,
	}
	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.NewUserResponse(&users[i], false))
	}
	return responses, repositories.NewPagination(query.Page, query.Limit, total), nil
}

func (s *UserServiceImpl) DeleteAccount(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) RequestConnection(requesterID, recipientID string) error {
	if requesterID == recipientID {
		return apperrors.ErrSelfConnection
	}
	if _, err := s.userRepo.FindByID(recipientID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if _, err := s.userRepo.CreateConnection(requesterID, recipientID); err != nil {
		if errors.Is(err, repositories.ErrDuplicateConnection) {
			return apperrors.ErrConnectionExists
		}
		return apperrors.InternalError(err)
	}

	s.notification.NotifyConnectionRequest(recipientID, requesterID)
	return nil
}

func (s *UserServiceImpl) AcceptConnection(recipientID, requesterID string) error {
	conn, err := s.userRepo.AcceptConnection(recipientID, requesterID)
	if errors.Is(err, repositories.ErrConnectionNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}

	s.notification.NotifyConnectionAccepted(conn.RequesterID, recipientID)
	return nil
}

func (s *UserServiceImpl) RemoveConnection(userID, otherID string) error {
	if err := s.userRepo.DeleteConnection(userID, otherID); err != nil {
		if errors.Is(err, repositories.ErrConnectionNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) ListConnections(userID string, page, limit int) ([]dto.UserResponse, repositories.Pagination, error) {
	users, total, err := s.userRepo.FindConnections(userID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.NewUserResponse(&users[i], false))
	}
	return responses, repositories.NewPagination(page, limit, total), nil
}

func (s *UserServiceImpl) SaveJob(userID, jobID string) error {
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SaveJob(userID, jobID); err != nil {
		if errors.Is(err, repositories.ErrSavedJobAlreadySaved) {
			// Saving twice is a no-op, not a conflict.
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) UnsaveJob(userID, jobID string) error {
	if err := s.userRepo.UnsaveJob(userID, jobID); err != nil {
		if errors.Is(err, repositories.ErrSavedJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) ListSavedJobs(userID string, page, limit int) ([]dto.JobResponse, repositories.Pagination, error) {
	jobs, total, err := s.userRepo.FindSavedJobs(userID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.NewJobResponse(&jobs[i]))
	}
	return responses, repositories.NewPagination(page, limit, total), nil
}
