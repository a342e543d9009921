package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page[dto.CategoryDTO], error)
	FindByID(ctx context.Context, id int64) (dto.CategoryDTO, error)
	Insert(ctx context.Context, category dto.CategoryDTO) (dto.CategoryDTO, error)
	Update(ctx context.Context, id int64, category dto.CategoryDTO) (dto.CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page[dto.CategoryDTO], error) {
	uc.log.Infof("Use Case: Attempting to list categories (page: %d, size: %d, orderBy: %s %s)", req.Page, req.Size, req.OrderBy, req.Direction)

	page, err := uc.categoryRepo.FindPaged(ctx, req)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return domain.Page[dto.CategoryDTO]{}, fmt.Errorf("could not retrieve categories: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d of %d categories", len(page.Content), page.TotalElements)
	return domain.MapPage(page, dto.NewCategoryDTO), nil
}

func (uc *categoryUseCase) FindByID(ctx context.Context, id int64) (dto.CategoryDTO, error) {
	uc.log.Infof("Use Case: Attempting to get category with ID %d", id)

	category, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Category ID %d not found", id)
			return dto.CategoryDTO{}, &ResourceNotFoundError{Msg: fmt.Sprintf("Entity not found: id %d", id), Err: err}
		}
		uc.log.Errorf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return dto.CategoryDTO{}, fmt.Errorf("could not retrieve category %d: %w", id, err)
	}

	uc.log.Infof("Use Case: Category retrieved successfully for ID %d", id)
	return dto.NewCategoryDTO(*category), nil
}

func (uc *categoryUseCase) Insert(ctx context.Context, d dto.CategoryDTO) (dto.CategoryDTO, error) {
	if strings.TrimSpace(d.Name) == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty name")
		return dto.CategoryDTO{}, NewValidationError("name", "must not be blank")
	}

	entity := d.ToEntity()

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", entity.Name)
	saved, err := uc.categoryRepo.Save(ctx, &entity)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", entity.Name, err)
		return dto.CategoryDTO{}, translateWriteError(err, "category", 0)
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", saved.Name, saved.ID)
	return dto.NewCategoryDTO(*saved), nil
}

// Update writes straight through to the store; a missing id is reported by Save.
func (uc *categoryUseCase) Update(ctx context.Context, id int64, d dto.CategoryDTO) (dto.CategoryDTO, error) {
	if strings.TrimSpace(d.Name) == "" {
		uc.log.Warnf("Use Case: Attempted update for ID %d with empty name", id)
		return dto.CategoryDTO{}, NewValidationError("name", "must not be blank")
	}

	entity := d.ToEntity()
	entity.ID = id

	uc.log.Infof("Use Case: Attempting to update category ID %d", id)
	saved, err := uc.categoryRepo.Save(ctx, &entity)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update category ID %d: %v", id, err)
		return dto.CategoryDTO{}, translateWriteError(err, "category", id)
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %d", saved.ID)
	return dto.NewCategoryDTO(*saved), nil
}

func (uc *categoryUseCase) Delete(ctx context.Context, id int64) error {
	uc.log.Infof("Use Case: Attempting to delete category ID %d", id)

	if err := uc.categoryRepo.DeleteByID(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return translateWriteError(err, "category", id)
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %d", id)
	return nil
}
