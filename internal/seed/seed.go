// Package seed loads the demo catalog: three categories and twenty-five products.
package seed

import (
	"context"
	"fmt"
	"time"

	"catalog_service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var categoryNames = []string{"Livros", "Eletrônicos", "Computadores"}

const gamerDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."

type productSeed struct {
	name        string
	description string
	price       string
	img         string
	categories  []int // indexes into categoryNames
}

var products = []productSeed{
	{"The Lord of the Rings", "Lorem ipsum dolor sit amet, consectetur adipiscing elit.", "90.5", "1-big.jpg", []int{0}},
	{"Smart TV", "Lorem ipsum dolor sit amet, consectetur adipiscing elit.", "2190.0", "2-big.jpg", []int{1, 2}},
	{"Macbook Pro", "Nam eleifend maximus tortor, at mollis leo.", "1250.0", "3-big.jpg", []int{2}},
	{"PC Gamer", "Donec aliquet odio ac rhoncus cursus.", "1200.0", "4-big.jpg", []int{2}},
	{"Rails for Dummies", "Cras fringilla convallis sem vel faucibus.", "100.99", "5-big.jpg", []int{0}},
	{"PC Gamer Ex", gamerDescription, "1350.0", "6-big.jpg", []int{2}},
	{"PC Gamer X", gamerDescription, "1350.0", "7-big.jpg", []int{2}},
	{"PC Gamer Alfa", gamerDescription, "1850.0", "8-big.jpg", []int{2}},
	{"PC Gamer Tera", gamerDescription, "1950.0", "9-big.jpg", []int{2}},
	{"PC Gamer Y", gamerDescription, "1700.0", "10-big.jpg", []int{2}},
	{"PC Gamer Nitro", gamerDescription, "1450.0", "11-big.jpg", []int{2}},
	{"PC Gamer Card", gamerDescription, "1850.0", "12-big.jpg", []int{2}},
	{"PC Gamer Plus", gamerDescription, "1350.0", "13-big.jpg", []int{2}},
	{"PC Gamer Hera", gamerDescription, "2250.0", "14-big.jpg", []int{2}},
	{"PC Gamer Weed", gamerDescription, "2200.0", "15-big.jpg", []int{2}},
	{"PC Gamer Max", gamerDescription, "2340.0", "16-big.jpg", []int{2}},
	{"PC Gamer Turbo", gamerDescription, "1280.0", "17-big.jpg", []int{2}},
	{"PC Gamer Hot", gamerDescription, "1450.0", "18-big.jpg", []int{2}},
	{"PC Gamer Ez", gamerDescription, "1750.0", "19-big.jpg", []int{2}},
	{"PC Gamer Tr", gamerDescription, "1650.0", "20-big.jpg", []int{2}},
	{"PC Gamer Tx", gamerDescription, "1680.0", "21-big.jpg", []int{2}},
	{"PC Gamer Er", gamerDescription, "1850.0", "22-big.jpg", []int{2}},
	{"PC Gamer Min", gamerDescription, "2250.0", "23-big.jpg", []int{2}},
	{"PC Gamer Boo", gamerDescription, "2350.0", "24-big.jpg", []int{2}},
	{"PC Gamer Foo", gamerDescription, "4170.0", "25-big.jpg", []int{2}},
}

const imgBaseURL = "https://raw.githubusercontent.com/devsuperior/dscatalog-resources/master/backend/img/"

// ProductCount is the number of products Run inserts into an empty store.
var ProductCount = len(products)

// Run inserts the demo catalog unless the store already holds categories.
func Run(ctx context.Context, categories domain.CategoryRepository, productRepo domain.ProductRepository, logger *logrus.Logger) error {
	existing, err := categories.FindPaged(ctx, domain.NewPageRequest(0, 1, "id", domain.ASC))
	if err != nil {
		return fmt.Errorf("failed to inspect existing categories: %w", err)
	}
	if existing.TotalElements > 0 {
		logger.Infof("Seed: Store already has %d categories, skipping", existing.TotalElements)
		return nil
	}

	saved := make([]domain.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		c, err := categories.Save(ctx, &domain.Category{Name: name})
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		saved = append(saved, *c)
	}

	base := time.Date(2020, time.July, 13, 20, 50, 7, 123450000, time.UTC)
	for i, ps := range products {
		p := domain.Product{
			Name:        ps.name,
			Description: ps.description,
			Price:       decimal.RequireFromString(ps.price),
			ImgURL:      imgBaseURL + ps.img,
			Date:        base.Add(time.Duration(i) * time.Hour),
		}
		for _, idx := range ps.categories {
			p.AddCategory(saved[idx])
		}
		if _, err := productRepo.Save(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", ps.name, err)
		}
	}

	logger.Infof("Seed: Inserted %d categories and %d products", len(saved), len(products))
	return nil
}
