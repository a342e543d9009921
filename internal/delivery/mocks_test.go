package delivery_test

import (
	"context"

	"catalog_service/internal/domain"
	"catalog_service/internal/dto"

	"github.com/stretchr/testify/mock"
)

type mockCategoryUseCase struct {
	mock.Mock
}

func (m *mockCategoryUseCase) FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page[dto.CategoryDTO], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[dto.CategoryDTO]), args.Error(1)
}

func (m *mockCategoryUseCase) FindByID(ctx context.Context, id int64) (dto.CategoryDTO, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.CategoryDTO), args.Error(1)
}

func (m *mockCategoryUseCase) Insert(ctx context.Context, category dto.CategoryDTO) (dto.CategoryDTO, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(dto.CategoryDTO), args.Error(1)
}

func (m *mockCategoryUseCase) Update(ctx context.Context, id int64, category dto.CategoryDTO) (dto.CategoryDTO, error) {
	args := m.Called(ctx, id, category)
	return args.Get(0).(dto.CategoryDTO), args.Error(1)
}

func (m *mockCategoryUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductUseCase struct {
	mock.Mock
}

func (m *mockProductUseCase) FindAllPaged(ctx context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[dto.ProductDTO], error) {
	args := m.Called(ctx, filter, req)
	return args.Get(0).(domain.Page[dto.ProductDTO]), args.Error(1)
}

func (m *mockProductUseCase) FindByID(ctx context.Context, id int64) (dto.ProductDTO, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.ProductDTO), args.Error(1)
}

func (m *mockProductUseCase) Insert(ctx context.Context, product dto.ProductDTO) (dto.ProductDTO, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(dto.ProductDTO), args.Error(1)
}

func (m *mockProductUseCase) Update(ctx context.Context, id int64, product dto.ProductDTO) (dto.ProductDTO, error) {
	args := m.Called(ctx, id, product)
	return args.Get(0).(dto.ProductDTO), args.Error(1)
}

func (m *mockProductUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) FindAllPaged(ctx context.Context, req domain.PageRequest) (domain.Page[dto.UserDTO], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[dto.UserDTO]), args.Error(1)
}

func (m *mockUserUseCase) FindByID(ctx context.Context, id int64) (dto.UserDTO, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.UserDTO), args.Error(1)
}

func (m *mockUserUseCase) Insert(ctx context.Context, user dto.UserInsertDTO) (dto.UserDTO, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(dto.UserDTO), args.Error(1)
}

func (m *mockUserUseCase) Update(ctx context.Context, id int64, user dto.UserDTO) (dto.UserDTO, error) {
	args := m.Called(ctx, id, user)
	return args.Get(0).(dto.UserDTO), args.Error(1)
}

func (m *mockUserUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
