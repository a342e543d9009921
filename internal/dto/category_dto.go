package dto

import "catalog_service/internal/domain"

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"notblank,max=255"`
}

func NewCategoryDTO(category domain.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

func NewCategoryDTOs(categories []domain.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, NewCategoryDTO(c))
	}
	return dtos
}

// ToEntity builds a category from the DTO. The ID is left for the caller to set.
func (d CategoryDTO) ToEntity() domain.Category {
	return domain.Category{Name: d.Name}
}
