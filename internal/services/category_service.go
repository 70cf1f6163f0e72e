package services

import (
	"errors"

	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/services/dto"
	"collegeskills_backend/pkg/apperrors"
)

type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) List() ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.ListActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		out = append(out, dto.CategoryResponse{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			Icon:          c.Icon,
			Subcategories: c.GetSubcategories(),
		})
	}
	return out, nil
}

// Seed inserts the default categories if they are missing. Called once
// at startup.
func (s *CategoryService) Seed(names []string) error {
	for _, name := range names {
		_, err := s.categoryRepo.FindByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrCategoryNotFound) {
			return err
		}
		category := &models.Category{Name: name, IsActive: true}
		if err := s.categoryRepo.Create(category); err != nil {
			return err
		}
	}
	return nil
}
