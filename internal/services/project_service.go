package services

import (
	"errors"
	"time"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type ProjectService struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	activity    *ActivityService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	activity *ActivityService,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		activity:    activity,
	}
}

func (s *ProjectService) Create(clientID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	user, err := s.userRepo.FindByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleClient {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.BudgetMax < req.BudgetMin {
		return nil, apperrors.NewBadRequestError("budget_max cannot be less than budget_min")
	}

	project := &models.ProjectRequest{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Status:      models.ProjectStatusOpen,
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			return nil, apperrors.NewBadRequestError("deadline must be RFC3339")
		}
		if deadline.Before(time.Now()) {
			return nil, apperrors.NewBadRequestError("deadline is in the past")
		}
		project.Deadline = &deadline
	}
	if err := project.SetSkills(normalizeSkills(req.Skills)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Record(clientID, "project_created", project.Title, &project.ID)

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *ProjectService) GetByID(id string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *ProjectService) List(filter *dto.ProjectFilterRequest) ([]dto.ProjectResponse, error) {
	criteria := repositories.ProjectCriteria{
		Status:      models.ProjectStatus(filter.Status),
		Category:    filter.Category,
		MaxBudget:   filter.MaxBudget,
		SkillSearch: filter.SkillSearch,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if criteria.Status == "" {
		criteria.Status = models.ProjectStatusOpen
	}
	if criteria.Limit <= 0 || criteria.Limit > 100 {
		criteria.Limit = 50
	}

	projects, err := s.projectRepo.List(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProjectResponses(projects), nil
}

func (s *ProjectService) ListMine(clientID string) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.List(repositories.ProjectCriteria{ClientID: clientID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toProjectResponses(projects), nil
}

func (s *ProjectService) Update(id, clientID string, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperrors.ErrInvalidStatus("project", "only open projects can be edited")
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.BudgetMin != nil {
		project.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		project.BudgetMax = *req.BudgetMax
	}
	if project.BudgetMax < project.BudgetMin {
		return nil, apperrors.NewBadRequestError("budget_max cannot be less than budget_min")
	}
	if req.Skills != nil {
		if err := project.SetSkills(normalizeSkills(req.Skills)); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *ProjectService) Cancel(id, clientID string) error {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return apperrors.ErrInsufficientPermissions
	}
	if project.Status != models.ProjectStatusOpen {
		return apperrors.ErrInvalidStatus("project", "only open projects can be cancelled")
	}

	if err := s.projectRepo.UpdateStatus(id, models.ProjectStatusCancelled); err != nil {
		return apperrors.InternalError(err)
	}

	s.activity.Record(clientID, "project_cancelled", project.Title, &project.ID)
	return nil
}

func toProjectResponse(p *models.ProjectRequest) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:                   p.ID,
		ClientID:             p.ClientID,
		Title:                p.Title,
		Description:          p.Description,
		Category:             p.Category,
		BudgetMin:            p.BudgetMin,
		BudgetMax:            p.BudgetMax,
		Skills:               p.GetSkills(),
		Status:               string(p.Status),
		SelectedFreelancerID: p.SelectedFreelancerID,
		ProposalCount:        p.ProposalCount,
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
	}
	if p.Deadline != nil {
		deadline := p.Deadline.Format(time.RFC3339)
		resp.Deadline = &deadline
	}
	return resp
}

func toProjectResponses(projects []models.ProjectRequest) []dto.ProjectResponse {
	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i]))
	}
	return out
}
