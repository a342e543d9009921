package repository_test

import (
	"context"
	"io"
	"testing"
	"time"

	"catalog_service/internal/domain"
	"catalog_service/internal/seed"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type repositories struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	users      domain.UserRepository
}

// StoreSuite holds the behaviour every store must share. Each test starts from
// the seeded catalog: 3 categories and 25 products.
type StoreSuite struct {
	suite.Suite

	open func(t *testing.T) repositories

	ctx context.Context
	repositories
	livros       domain.Category
	eletronicos  domain.Category
	computadores domain.Category
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.repositories = s.open(s.T())
	s.Require().NoError(seed.Run(s.ctx, s.categories, s.products, newTestLogger()))

	page, err := s.categories.FindPaged(s.ctx, domain.NewPageRequest(0, 10, "id", domain.ASC))
	s.Require().NoError(err)
	s.Require().Len(page.Content, 3)
	s.livros, s.eletronicos, s.computadores = page.Content[0], page.Content[1], page.Content[2]
}

func (s *StoreSuite) firstProduct() domain.Product {
	page, err := s.products.FindPaged(s.ctx, domain.NewPageRequest(0, 1, "id", domain.ASC))
	s.Require().NoError(err)
	s.Require().Len(page.Content, 1)
	return page.Content[0]
}

func (s *StoreSuite) productCount() int64 {
	page, err := s.products.FindPaged(s.ctx, domain.NewPageRequest(0, 1, "id", domain.ASC))
	s.Require().NoError(err)
	return page.TotalElements
}

func (s *StoreSuite) TestFindPagedReturnsRequestedPage() {
	page, err := s.products.FindPaged(s.ctx, domain.NewPageRequest(0, 10, "id", domain.ASC))
	s.Require().NoError(err)

	s.False(page.Empty)
	s.Equal(0, page.Number)
	s.Equal(10, page.Size)
	s.Len(page.Content, 10)
	s.Equal(int64(seed.ProductCount), page.TotalElements)
	s.Equal(3, page.TotalPages)
	s.True(page.First)
	s.False(page.Last)
}

func (s *StoreSuite) TestFindPagedPastTheEndIsEmpty() {
	page, err := s.products.FindPaged(s.ctx, domain.NewPageRequest(50, 10, "id", domain.ASC))
	s.Require().NoError(err)

	s.True(page.Empty)
	s.Empty(page.Content)
	s.Equal(int64(seed.ProductCount), page.TotalElements)
}

func (s *StoreSuite) TestFindPagedSortsByName() {
	page, err := s.products.FindPaged(s.ctx, domain.NewPageRequest(0, 10, "name", domain.ASC))
	s.Require().NoError(err)
	s.Require().Len(page.Content, 10)

	s.Equal("Macbook Pro", page.Content[0].Name)
	s.Equal("PC Gamer", page.Content[1].Name)
	s.Equal("PC Gamer Alfa", page.Content[2].Name)
	for i := 1; i < len(page.Content); i++ {
		s.LessOrEqual(page.Content[i-1].Name, page.Content[i].Name)
	}
}

func (s *StoreSuite) TestFindPagedSortsByPriceDescending() {
	page, err := s.products.FindPaged(s.ctx, domain.NewPageRequest(0, 3, "price", domain.DESC))
	s.Require().NoError(err)
	s.Require().Len(page.Content, 3)

	s.Equal("PC Gamer Foo", page.Content[0].Name)
	s.True(page.Content[0].Price.GreaterThanOrEqual(page.Content[1].Price))
	s.True(page.Content[1].Price.GreaterThanOrEqual(page.Content[2].Price))
}

func (s *StoreSuite) TestFindPagedCategoriesByName() {
	page, err := s.categories.FindPaged(s.ctx, domain.NewPageRequest(0, 12, "name", domain.ASC))
	s.Require().NoError(err)
	s.Require().Len(page.Content, 3)

	s.Equal("Computadores", page.Content[0].Name)
	s.Equal("Livros", page.Content[2].Name)
}

func (s *StoreSuite) TestSearchFiltersByCategoryAndName() {
	books, err := s.products.Search(s.ctx, domain.ProductFilter{CategoryID: s.livros.ID}, domain.NewPageRequest(0, 12, "name", domain.ASC))
	s.Require().NoError(err)
	s.Equal(int64(2), books.TotalElements)
	s.Equal("Rails for Dummies", books.Content[0].Name)
	s.Equal("The Lord of the Rings", books.Content[1].Name)

	gamers, err := s.products.Search(s.ctx, domain.ProductFilter{Name: "gamer"}, domain.NewPageRequest(0, 5, "name", domain.ASC))
	s.Require().NoError(err)
	s.Equal(int64(21), gamers.TotalElements)
	s.Len(gamers.Content, 5)

	both, err := s.products.Search(s.ctx, domain.ProductFilter{CategoryID: s.livros.ID, Name: "gamer"}, domain.NewPageRequest(0, 5, "name", domain.ASC))
	s.Require().NoError(err)
	s.True(both.Empty)
}

func (s *StoreSuite) TestSearchNameTreatsWildcardsLiterally() {
	for _, name := range []string{"_", "%", `\`, "PC_Gamer"} {
		page, err := s.products.Search(s.ctx, domain.ProductFilter{Name: name}, domain.NewPageRequest(0, 12, "name", domain.ASC))
		s.Require().NoError(err, name)
		s.Equal(int64(0), page.TotalElements, name)
	}

	_, err := s.products.Save(s.ctx, &domain.Product{
		Name:       "Cabo 100% cobre",
		Price:      decimal.RequireFromString("10"),
		Date:       time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		Categories: []domain.Category{{ID: s.livros.ID}},
	})
	s.Require().NoError(err)

	page, err := s.products.Search(s.ctx, domain.ProductFilter{Name: "0% c"}, domain.NewPageRequest(0, 12, "name", domain.ASC))
	s.Require().NoError(err)
	s.Require().Equal(int64(1), page.TotalElements)
	s.Equal("Cabo 100% cobre", page.Content[0].Name)
}

func (s *StoreSuite) TestFindByIDReturnsProductWithCategories() {
	first := s.firstProduct()

	found, err := s.products.FindByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
	s.Equal("The Lord of the Rings", found.Name)
	s.Require().Len(found.Categories, 1)
	s.Equal(s.livros, found.Categories[0])
}

func (s *StoreSuite) TestFindByIDMissingReturnsNotFound() {
	_, err := s.products.FindByID(s.ctx, 1000)
	s.Require().ErrorIs(err, domain.ErrNotFound)

	_, err = s.categories.FindByID(s.ctx, 1000)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestInsertThenFindByIDRoundTrips() {
	date := time.Date(2021, time.March, 4, 10, 30, 0, 0, time.UTC)
	product := &domain.Product{
		Name:        "Phone",
		Description: "Good phone",
		Price:       decimal.RequireFromString("800.5"),
		ImgURL:      "https://img.com/phone.png",
		Date:        date,
	}
	product.AddCategory(domain.Category{ID: s.computadores.ID})
	product.AddCategory(domain.Category{ID: s.eletronicos.ID})

	saved, err := s.products.Save(s.ctx, product)
	s.Require().NoError(err)
	s.NotZero(saved.ID)
	s.Equal(int64(seed.ProductCount+1), s.productCount())

	found, err := s.products.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Phone", found.Name)
	s.Equal("Good phone", found.Description)
	s.True(decimal.RequireFromString("800.5").Equal(found.Price), "price %s", found.Price)
	s.Equal("https://img.com/phone.png", found.ImgURL)
	s.True(date.Equal(found.Date), "date %s", found.Date)
	s.Equal([]domain.Category{s.computadores, s.eletronicos}, found.Categories)
}

func (s *StoreSuite) TestSaveWithIDOverwritesExistingRow() {
	first := s.firstProduct()

	first.Name = "The Hobbit"
	first.Categories = nil
	first.AddCategory(domain.Category{ID: s.eletronicos.ID})
	updated, err := s.products.Save(s.ctx, &first)
	s.Require().NoError(err)
	s.Equal(first.ID, updated.ID)
	s.Equal("The Hobbit", updated.Name)
	s.Equal([]domain.Category{s.eletronicos}, updated.Categories)
	s.Equal(int64(seed.ProductCount), s.productCount())
}

func (s *StoreSuite) TestSaveWithMissingIDReturnsNotFound() {
	product := &domain.Product{ID: 1000, Name: "Ghost", Price: decimal.NewFromInt(1), Date: time.Now().UTC()}

	_, err := s.products.Save(s.ctx, product)
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Equal(int64(seed.ProductCount), s.productCount())

	_, err = s.categories.Save(s.ctx, &domain.Category{ID: 1000, Name: "Ghost"})
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestSaveWithMissingCategoryLeavesProductUnchanged() {
	first := s.firstProduct()

	changed := first
	changed.Name = "Changed"
	changed.Categories = nil
	changed.AddCategory(domain.Category{ID: 1000})
	_, err := s.products.Save(s.ctx, &changed)

	var nf *domain.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal("category", nf.Entity)
	s.Equal(int64(1000), nf.ID)

	found, err := s.products.FindByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first.Name, found.Name)
	s.Equal(first.Categories, found.Categories)
}

func (s *StoreSuite) TestDeleteByIDRemovesProduct() {
	first := s.firstProduct()

	s.Require().NoError(s.products.DeleteByID(s.ctx, first.ID))
	s.Equal(int64(seed.ProductCount-1), s.productCount())

	_, err := s.products.FindByID(s.ctx, first.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestDeleteByIDMissingReturnsNotFound() {
	s.ErrorIs(s.products.DeleteByID(s.ctx, 1000), domain.ErrNotFound)
	s.ErrorIs(s.categories.DeleteByID(s.ctx, 1000), domain.ErrNotFound)
	s.ErrorIs(s.users.DeleteByID(s.ctx, 1000), domain.ErrNotFound)
}

func (s *StoreSuite) TestDeleteReferencedCategoryFailsAndKeepsStore() {
	err := s.categories.DeleteByID(s.ctx, s.livros.ID)
	s.Require().ErrorIs(err, domain.ErrIntegrityViolation)

	found, err := s.categories.FindByID(s.ctx, s.livros.ID)
	s.Require().NoError(err)
	s.Equal(s.livros, *found)
	s.Equal(int64(seed.ProductCount), s.productCount())
}

func (s *StoreSuite) TestDeleteUnreferencedCategorySucceeds() {
	created, err := s.categories.Save(s.ctx, &domain.Category{Name: "Garden"})
	s.Require().NoError(err)

	s.Require().NoError(s.categories.DeleteByID(s.ctx, created.ID))
	_, err = s.categories.FindByID(s.ctx, created.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestUserEmailIsUnique() {
	_, err := s.users.Save(s.ctx, &domain.User{FirstName: "Maria", Email: "maria@gmail.com", PasswordHash: "hash"})
	s.Require().NoError(err)

	_, err = s.users.Save(s.ctx, &domain.User{FirstName: "Other", Email: "maria@gmail.com", PasswordHash: "hash"})
	s.Require().ErrorIs(err, domain.ErrIntegrityViolation)

	found, err := s.users.FindByEmail(s.ctx, "maria@gmail.com")
	s.Require().NoError(err)
	s.Equal("Maria", found.FirstName)

	_, err = s.users.FindByEmail(s.ctx, "nobody@gmail.com")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestUserUpdateKeepsPasswordHash() {
	created, err := s.users.Save(s.ctx, &domain.User{FirstName: "Alex", LastName: "Brown", Email: "alex@gmail.com", PasswordHash: "secret-hash"})
	s.Require().NoError(err)

	updated, err := s.users.Save(s.ctx, &domain.User{ID: created.ID, FirstName: "Alexander", LastName: "Brown", Email: "alex@gmail.com"})
	s.Require().NoError(err)
	s.Equal("Alexander", updated.FirstName)
	s.Equal("secret-hash", updated.PasswordHash)

	page, err := s.users.FindPaged(s.ctx, domain.NewPageRequest(0, 12, "firstName", domain.ASC))
	s.Require().NoError(err)
	s.Equal(int64(1), page.TotalElements)
}
