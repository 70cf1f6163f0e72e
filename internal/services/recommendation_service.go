package services

import (
	"errors"
	"sort"
	"time"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

// Scoring weights for freelancer recommendations. Skill overlap
// dominates, the rest nudges the ordering.
const (
	freelancerSkillWeight   = 50.0
	freelancerRatingWeight  = 20.0
	freelancerReviewsWeight = 15.0
	freelancerCollegeWeight = 15.0

	projectSkillWeight   = 70.0
	projectRecencyWeight = 30.0

	// Very poor matches are dropped, then the list is cut to the top slice.
	freelancerMinScore = 10.0
	freelancerTopCount = 5
	projectMinScore    = 15.0
	projectTopCount    = 10

	reviewCountCap    = 10
	recencyWindowDays = 7
)

type RecommendationService struct {
	profileRepo repositories.ProfileRepository
	projectRepo repositories.ProjectRepository
}

func NewRecommendationService(
	profileRepo repositories.ProfileRepository,
	projectRepo repositories.ProjectRepository,
) *RecommendationService {
	return &RecommendationService{
		profileRepo: profileRepo,
		projectRepo: projectRepo,
	}
}

// RecommendFreelancers scores freelancers against a project's skill
// requirements for the project owner.
func (s *RecommendationService) RecommendFreelancers(projectID, clientID string) ([]dto.ScoredFreelancer, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if project.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	clientProfile, err := s.profileRepo.FindByUserID(clientID)
	if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.InternalError(err)
	}

	candidates, err := s.profileRepo.ListFreelancers(repositories.FreelancerCriteria{})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	required := project.GetSkills()
	scored := make([]dto.ScoredFreelancer, 0, len(candidates))
	for i := range candidates {
		score := scoreFreelancer(&candidates[i], required, clientProfile)
		if score <= freelancerMinScore {
			continue
		}
		scored = append(scored, dto.ScoredFreelancer{
			Profile: toProfileResponse(&candidates[i]),
			Score:   score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > freelancerTopCount {
		scored = scored[:freelancerTopCount]
	}
	return scored, nil
}

// RecommendProjects builds a freelancer's personalized feed of open
// projects, preferring skill fit and fresh postings.
func (s *RecommendationService) RecommendProjects(freelancerID string) ([]dto.ScoredProject, error) {
	profile, err := s.profileRepo.FindByUserID(freelancerID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if profile.UserType != models.UserRoleFreelancer {
		return nil, apperrors.ErrInsufficientPermissions
	}

	projects, err := s.projectRepo.List(repositories.ProjectCriteria{Status: models.ProjectStatusOpen})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	available := profile.GetSkills()
	now := time.Now()
	scored := make([]dto.ScoredProject, 0, len(projects))
	for i := range projects {
		score := scoreProject(&projects[i], available, now)
		if score <= projectMinScore {
			continue
		}
		scored = append(scored, dto.ScoredProject{
			Project: toProjectResponse(&projects[i]),
			Score:   score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > projectTopCount {
		scored = scored[:projectTopCount]
	}
	return scored, nil
}

func scoreFreelancer(candidate *models.Profile, requiredSkills []string, client *models.Profile) float64 {
	score := freelancerSkillWeight * skillMatchRatio(requiredSkills, candidate.GetSkills())

	if candidate.AverageRating != nil {
		score += freelancerRatingWeight * (*candidate.AverageRating / 5.0)
	}

	reviews := candidate.TotalReviews
	if reviews > reviewCountCap {
		reviews = reviewCountCap
	}
	score += freelancerReviewsWeight * (float64(reviews) / float64(reviewCountCap))

	if client != nil && client.CollegeName != nil && candidate.CollegeName != nil &&
		*client.CollegeName == *candidate.CollegeName {
		score += freelancerCollegeWeight
	}

	return score
}

func scoreProject(project *models.ProjectRequest, availableSkills []string, now time.Time) float64 {
	score := projectSkillWeight * skillMatchRatio(project.GetSkills(), availableSkills)

	// Linear decay to zero over the recency window.
	age := now.Sub(project.CreatedAt)
	window := time.Duration(recencyWindowDays) * 24 * time.Hour
	if age < 0 {
		age = 0
	}
	if age < window {
		score += projectRecencyWeight * (1 - float64(age)/float64(window))
	}

	return score
}
