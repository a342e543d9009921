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

type ProductUseCase interface {
	FindAllPaged(ctx context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[dto.ProductDTO], error)
	FindByID(ctx context.Context, id int64) (dto.ProductDTO, error)
	Insert(ctx context.Context, product dto.ProductDTO) (dto.ProductDTO, error)
	Update(ctx context.Context, id int64, product dto.ProductDTO) (dto.ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

type productUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		log:         logger,
	}
}

func toProductDTO(p domain.Product) dto.ProductDTO {
	return dto.NewProductDTOWithCategories(p, p.Categories)
}

func (uc *productUseCase) FindAllPaged(ctx context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[dto.ProductDTO], error) {
	filter.Name = strings.TrimSpace(filter.Name)
	uc.log.Infof("Use Case: Attempting to list products (page: %d, size: %d, orderBy: %s %s, categoryId: %d, name: '%s')",
		req.Page, req.Size, req.OrderBy, req.Direction, filter.CategoryID, filter.Name)

	page, err := uc.productRepo.Search(ctx, filter, req)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return domain.Page[dto.ProductDTO]{}, fmt.Errorf("could not retrieve products: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d of %d products", len(page.Content), page.TotalElements)
	return domain.MapPage(page, toProductDTO), nil
}

func (uc *productUseCase) FindByID(ctx context.Context, id int64) (dto.ProductDTO, error) {
	uc.log.Infof("Use Case: Attempting to get product with ID %d", id)

	product, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Product ID %d not found", id)
			return dto.ProductDTO{}, &ResourceNotFoundError{Msg: fmt.Sprintf("Entity not found: id %d", id), Err: err}
		}
		uc.log.Errorf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return dto.ProductDTO{}, fmt.Errorf("could not retrieve product %d: %w", id, err)
	}

	uc.log.Infof("Use Case: Product retrieved successfully for ID %d", id)
	return toProductDTO(*product), nil
}

func (uc *productUseCase) validate(d dto.ProductDTO) error {
	verr := &ValidationError{Msg: "Validation error"}
	if strings.TrimSpace(d.Name) == "" {
		verr.AddError("name", "must not be blank")
	}
	if !d.Price.IsPositive() {
		verr.AddError("price", "must be positive")
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

func (uc *productUseCase) Insert(ctx context.Context, d dto.ProductDTO) (dto.ProductDTO, error) {
	if err := uc.validate(d); err != nil {
		uc.log.Warnf("Use Case: Attempted to create invalid product '%s': %v", d.Name, err)
		return dto.ProductDTO{}, err
	}

	var entity domain.Product
	d.CopyTo(&entity)

	uc.log.Infof("Use Case: Attempting to create product '%s' with %d categories", entity.Name, len(entity.Categories))
	saved, err := uc.productRepo.Save(ctx, &entity)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", entity.Name, err)
		return dto.ProductDTO{}, translateWriteError(err, "product", 0)
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", saved.Name, saved.ID)
	return toProductDTO(*saved), nil
}

// Update overwrites the product by id without a prior read. The store reports a
// missing product, or a missing referenced category, when the write happens.
func (uc *productUseCase) Update(ctx context.Context, id int64, d dto.ProductDTO) (dto.ProductDTO, error) {
	if err := uc.validate(d); err != nil {
		uc.log.Warnf("Use Case: Attempted invalid update for product ID %d: %v", id, err)
		return dto.ProductDTO{}, err
	}

	entity := domain.Product{ID: id}
	d.CopyTo(&entity)

	uc.log.Infof("Use Case: Attempting to update product ID %d", id)
	saved, err := uc.productRepo.Save(ctx, &entity)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update product ID %d: %v", id, err)
		return dto.ProductDTO{}, translateWriteError(err, "product", id)
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", saved.ID)
	return toProductDTO(*saved), nil
}

func (uc *productUseCase) Delete(ctx context.Context, id int64) error {
	uc.log.Infof("Use Case: Attempting to delete product ID %d", id)

	if err := uc.productRepo.DeleteByID(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return translateWriteError(err, "product", id)
	}

	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return nil
}
