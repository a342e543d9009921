package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"
	"catalog_service/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	existingID  int64 = 1
	missingID   int64 = 2
	dependentID int64 = 3
)

func newProduct() *domain.Product {
	p := &domain.Product{
		ID:          existingID,
		Name:        "Phone",
		Description: "Good Phone",
		Price:       decimal.RequireFromString("800"),
		ImgURL:      "https://img.com/img.png",
		Date:        time.Date(2020, time.October, 20, 3, 0, 0, 0, time.UTC),
	}
	p.AddCategory(domain.Category{ID: 2, Name: "Electronics"})
	return p
}

func newProductDTO() dto.ProductDTO {
	p := newProduct()
	return dto.NewProductDTOWithCategories(*p, p.Categories)
}

func TestProductFindAllPagedUsesSearch(t *testing.T) {
	repo := new(mockProductRepo)
	uc := usecase.NewProductUseCase(repo, newTestLogger())
	req := domain.NewPageRequest(0, 10, "name", domain.ASC)
	filter := domain.ProductFilter{CategoryID: 2, Name: "phone"}

	repo.On("Search", mock.Anything, filter, req).
		Return(domain.NewPage([]domain.Product{*newProduct()}, req, 1), nil)

	page, err := uc.FindAllPaged(context.Background(), domain.ProductFilter{CategoryID: 2, Name: "  phone "}, req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Phone", page.Content[0].Name)
	assert.Equal(t, []dto.CategoryDTO{{ID: 2, Name: "Electronics"}}, page.Content[0].Categories)
	repo.AssertExpectations(t)
}

func TestProductFindByID(t *testing.T) {
	repo := new(mockProductRepo)
	uc := usecase.NewProductUseCase(repo, newTestLogger())
	repo.On("FindByID", mock.Anything, existingID).Return(newProduct(), nil)
	repo.On("FindByID", mock.Anything, missingID).Return(nil, domain.NewNotFoundError("product", missingID))

	t.Run("existing id returns the product", func(t *testing.T) {
		result, err := uc.FindByID(context.Background(), existingID)
		require.NoError(t, err)
		assert.Equal(t, newProductDTO(), result)
	})

	t.Run("missing id returns resource not found", func(t *testing.T) {
		_, err := uc.FindByID(context.Background(), missingID)
		var nf *usecase.ResourceNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Entity not found: id 2", nf.Msg)
	})
}

func TestProductInsert(t *testing.T) {
	repo := new(mockProductRepo)
	uc := usecase.NewProductUseCase(repo, newTestLogger())

	input := newProductDTO()
	input.ID = 0
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == 0 && p.Name == "Phone" && len(p.Categories) == 1 && p.Categories[0].ID == 2
	})).Return(newProduct(), nil).Once()

	result, err := uc.Insert(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, existingID, result.ID)
	repo.AssertExpectations(t)
}

func TestProductInsertRejectsInvalidInput(t *testing.T) {
	repo := new(mockProductRepo)
	uc := usecase.NewProductUseCase(repo, newTestLogger())

	input := newProductDTO()
	input.Name = "   "
	input.Price = decimal.NewFromInt(-1)

	_, err := uc.Insert(context.Background(), input)

	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []usecase.FieldMessage{
		{FieldName: "name", Message: "must not be blank"},
		{FieldName: "price", Message: "must be positive"},
	}, verr.Errors)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductUpdate(t *testing.T) {
	t.Run("existing id writes once without reading", func(t *testing.T) {
		repo := new(mockProductRepo)
		uc := usecase.NewProductUseCase(repo, newTestLogger())
		repo.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool { return p.ID == existingID })).
			Return(newProduct(), nil).Once()

		result, err := uc.Update(context.Background(), existingID, newProductDTO())

		require.NoError(t, err)
		assert.Equal(t, newProductDTO(), result)
		repo.AssertNumberOfCalls(t, "Save", 1)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing id returns resource not found", func(t *testing.T) {
		repo := new(mockProductRepo)
		uc := usecase.NewProductUseCase(repo, newTestLogger())
		repo.On("Save", mock.Anything, mock.Anything).Return(nil, domain.NewNotFoundError("product", missingID))

		_, err := uc.Update(context.Background(), missingID, newProductDTO())

		var nf *usecase.ResourceNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Id not found 2", nf.Msg)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing category names the category", func(t *testing.T) {
		repo := new(mockProductRepo)
		uc := usecase.NewProductUseCase(repo, newTestLogger())
		repo.On("Save", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("could not link: %w", domain.NewNotFoundError("category", 9)))

		_, err := uc.Update(context.Background(), existingID, newProductDTO())

		var nf *usecase.ResourceNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Category not found: id 9", nf.Msg)
	})
}

func TestProductDelete(t *testing.T) {
	repo := new(mockProductRepo)
	uc := usecase.NewProductUseCase(repo, newTestLogger())
	repo.On("DeleteByID", mock.Anything, existingID).Return(nil)
	repo.On("DeleteByID", mock.Anything, missingID).Return(domain.NewNotFoundError("product", missingID))
	repo.On("DeleteByID", mock.Anything, dependentID).
		Return(fmt.Errorf("could not delete product: %w", domain.ErrIntegrityViolation))

	t.Run("existing id does nothing else", func(t *testing.T) {
		require.NoError(t, uc.Delete(context.Background(), existingID))
		repo.AssertCalled(t, "DeleteByID", mock.Anything, existingID)
	})

	t.Run("missing id returns resource not found", func(t *testing.T) {
		var nf *usecase.ResourceNotFoundError
		require.ErrorAs(t, uc.Delete(context.Background(), missingID), &nf)
	})

	t.Run("dependent id returns database error", func(t *testing.T) {
		var dbErr *usecase.DatabaseError
		require.ErrorAs(t, uc.Delete(context.Background(), dependentID), &dbErr)
		assert.Equal(t, "Integrity violation", dbErr.Msg)
	})
}

func TestProductUnexpectedErrorsPassThrough(t *testing.T) {
	repo := new(mockProductRepo)
	uc := usecase.NewProductUseCase(repo, newTestLogger())
	boom := errors.New("connection reset")
	repo.On("DeleteByID", mock.Anything, existingID).Return(boom)

	err := uc.Delete(context.Background(), existingID)

	assert.ErrorIs(t, err, boom)
	var nf *usecase.ResourceNotFoundError
	assert.False(t, errors.As(err, &nf))
}
