package usecase_test

import (
	"context"
	"io"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Category], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[domain.Category]), args.Error(1)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if saved := args.Get(0); saved != nil {
		return saved.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Product], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[domain.Product]), args.Error(1)
}

func (m *mockProductRepo) Search(ctx context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[domain.Product], error) {
	args := m.Called(ctx, filter, req)
	return args.Get(0).(domain.Page[domain.Product]), args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if saved := args.Get(0); saved != nil {
		return saved.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.User], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Page[domain.User]), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if saved := args.Get(0); saved != nil {
		return saved.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
