package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64
	Name string
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImgURL      string
	Date        time.Time
	Categories  []Category // insertion order, unique by ID
}

// AddCategory appends c unless a category with the same ID is already attached.
func (p *Product) AddCategory(c Category) {
	for _, existing := range p.Categories {
		if existing.ID == c.ID {
			return
		}
	}
	p.Categories = append(p.Categories, c)
}

// CategoryIDs returns the IDs of the attached categories in order.
func (p *Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}
