package dto

import (
	"time"

	"catalog_service/internal/domain"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type ProductDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" binding:"notblank,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"gt=0"`
	ImgURL      string          `json:"img_url" binding:"omitempty,url"`
	Date        time.Time       `json:"date" binding:"required,pastorpresent"`
	Categories  []CategoryDTO   `json:"categories"`
}

// NewProductDTO maps the scalar fields only; Categories is an empty list.
func NewProductDTO(product domain.Product) ProductDTO {
	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImgURL:      product.ImgURL,
		Date:        product.Date,
		Categories:  []CategoryDTO{},
	}
}

// NewProductDTOWithCategories also flattens categories into nested DTOs, keeping their order.
func NewProductDTOWithCategories(product domain.Product, categories []domain.Category) ProductDTO {
	d := NewProductDTO(product)
	d.Categories = NewCategoryDTOs(categories)
	return d
}

// CopyTo overwrites every mutable field of product. Categories are copied as
// ID references; duplicate IDs collapse to the first occurrence.
func (d ProductDTO) CopyTo(product *domain.Product) {
	product.Name = d.Name
	product.Description = d.Description
	product.Price = d.Price
	product.ImgURL = d.ImgURL
	product.Date = d.Date.UTC().Truncate(time.Microsecond)
	product.Categories = nil
	for _, c := range d.Categories {
		product.AddCategory(domain.Category{ID: c.ID, Name: c.Name})
	}
}
