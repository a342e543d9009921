package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"catalog_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// MemoryStore keeps every entity in process memory behind a single lock.
// It enforces the same integrity rules as the database schema: category
// links must resolve, linked categories cannot be removed and emails are unique.
type MemoryStore struct {
	mu  sync.RWMutex
	log *logrus.Logger

	categories map[int64]domain.Category
	products   map[int64]domain.Product
	users      map[int64]domain.User

	nextCategoryID int64
	nextProductID  int64
	nextUserID     int64
}

func NewMemoryStore(logger *logrus.Logger) *MemoryStore {
	return &MemoryStore{
		log:        logger,
		categories: make(map[int64]domain.Category),
		products:   make(map[int64]domain.Product),
		users:      make(map[int64]domain.User),
	}
}

func (s *MemoryStore) Categories() domain.CategoryRepository { return &memoryCategoryRepository{s} }
func (s *MemoryStore) Products() domain.ProductRepository    { return &memoryProductRepository{s} }
func (s *MemoryStore) Users() domain.UserRepository          { return &memoryUserRepository{s} }

type comparator[T any] func(a, b T) int

// pageOf sorts items by the requested property, breaking ties by id, and cuts
// out the requested page. Unknown properties sort by id.
func pageOf[T any](items []T, req domain.PageRequest, by map[string]comparator[T], id func(T) int64) domain.Page[T] {
	byID := func(a, b T) int { return cmp.Compare(id(a), id(b)) }
	primary, ok := by[req.OrderBy]
	if !ok {
		primary = byID
	}
	slices.SortFunc(items, func(a, b T) int {
		c := primary(a, b)
		if req.Descending() {
			c = -c
		}
		if c != 0 {
			return c
		}
		return byID(a, b)
	})

	total := int64(len(items))
	start := max(0, min(req.Offset(), len(items)))
	end := start + min(max(req.Size, 0), len(items)-start)
	content := make([]T, end-start)
	copy(content, items[start:end])
	return domain.NewPage(content, req, total)
}

type memoryCategoryRepository struct {
	s *MemoryStore
}

var categoryComparators = map[string]comparator[domain.Category]{
	"name": func(a, b domain.Category) int { return strings.Compare(a.Name, b.Name) },
}

func (r *memoryCategoryRepository) FindPaged(_ context.Context, req domain.PageRequest) (domain.Page[domain.Category], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		items = append(items, c)
	}
	return pageOf(items, req, categoryComparators, func(c domain.Category) int64 { return c.ID }), nil
}

func (r *memoryCategoryRepository) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.NewNotFoundError("category", id)
	}
	return &c, nil
}

func (r *memoryCategoryRepository) Save(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *category
	if c.ID == 0 {
		r.s.nextCategoryID++
		c.ID = r.s.nextCategoryID
	} else if _, ok := r.s.categories[c.ID]; !ok {
		return nil, domain.NewNotFoundError("category", c.ID)
	}
	r.s.categories[c.ID] = c
	r.s.log.Debugf("Repository: Category saved in memory with ID: %d", c.ID)
	return &c, nil
}

func (r *memoryCategoryRepository) DeleteByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return domain.NewNotFoundError("category", id)
	}
	for _, p := range r.s.products {
		if slices.Contains(p.CategoryIDs(), id) {
			return fmt.Errorf("could not delete category %d: %w: referenced by product %d",
				id, domain.ErrIntegrityViolation, p.ID)
		}
	}
	delete(r.s.categories, id)
	return nil
}

type memoryProductRepository struct {
	s *MemoryStore
}

var productComparators = map[string]comparator[domain.Product]{
	"name":  func(a, b domain.Product) int { return strings.Compare(a.Name, b.Name) },
	"price": func(a, b domain.Product) int { return a.Price.Cmp(b.Price) },
	"date":  func(a, b domain.Product) int { return a.Date.Compare(b.Date) },
}

// resolve returns a copy of p with category names read from the store.
// Callers must hold the lock.
func (s *MemoryStore) resolve(p domain.Product) domain.Product {
	out := p
	out.Categories = make([]domain.Category, 0, len(p.Categories))
	for _, ref := range p.Categories {
		if c, ok := s.categories[ref.ID]; ok {
			out.Categories = append(out.Categories, c)
		}
	}
	return out
}

func (r *memoryProductRepository) FindPaged(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Product], error) {
	return r.Search(ctx, domain.ProductFilter{}, req)
}

func (r *memoryProductRepository) Search(_ context.Context, filter domain.ProductFilter, req domain.PageRequest) (domain.Page[domain.Product], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	name := strings.ToLower(filter.Name)
	items := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.CategoryID != 0 && !slices.Contains(p.CategoryIDs(), filter.CategoryID) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		items = append(items, r.s.resolve(p))
	}
	return pageOf(items, req, productComparators, func(p domain.Product) int64 { return p.ID }), nil
}

func (r *memoryProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("product", id)
	}
	resolved := r.s.resolve(p)
	return &resolved, nil
}

func (r *memoryProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID != 0 {
		if _, ok := r.s.products[product.ID]; !ok {
			return nil, domain.NewNotFoundError("product", product.ID)
		}
	}

	stored := *product
	stored.Categories = nil
	for _, id := range product.CategoryIDs() {
		if _, ok := r.s.categories[id]; !ok {
			return nil, domain.NewNotFoundError("category", id)
		}
		stored.AddCategory(domain.Category{ID: id})
	}
	stored.Date = stored.Date.UTC()

	if stored.ID == 0 {
		r.s.nextProductID++
		stored.ID = r.s.nextProductID
	}
	r.s.products[stored.ID] = stored
	r.s.log.Debugf("Repository: Product saved in memory with ID: %d", stored.ID)

	resolved := r.s.resolve(stored)
	return &resolved, nil
}

func (r *memoryProductRepository) DeleteByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return domain.NewNotFoundError("product", id)
	}
	delete(r.s.products, id)
	return nil
}

type memoryUserRepository struct {
	s *MemoryStore
}

var userComparators = map[string]comparator[domain.User]{
	"firstName": func(a, b domain.User) int { return strings.Compare(a.FirstName, b.FirstName) },
	"lastName":  func(a, b domain.User) int { return strings.Compare(a.LastName, b.LastName) },
	"email":     func(a, b domain.User) int { return strings.Compare(a.Email, b.Email) },
}

func (r *memoryUserRepository) FindPaged(_ context.Context, req domain.PageRequest) (domain.Page[domain.User], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		items = append(items, u)
	}
	return pageOf(items, req, userComparators, func(u domain.User) int64 { return u.ID }), nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
}

func (r *memoryUserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := *user
	if u.ID != 0 {
		existing, ok := r.s.users[u.ID]
		if !ok {
			return nil, domain.NewNotFoundError("user", u.ID)
		}
		if u.PasswordHash == "" {
			u.PasswordHash = existing.PasswordHash
		}
	}
	for _, other := range r.s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return nil, fmt.Errorf("could not save user: %w: email %s already taken", domain.ErrIntegrityViolation, u.Email)
		}
	}

	if u.ID == 0 {
		r.s.nextUserID++
		u.ID = r.s.nextUserID
	}
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *memoryUserRepository) DeleteByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.NewNotFoundError("user", id)
	}
	delete(r.s.users, id)
	return nil
}
