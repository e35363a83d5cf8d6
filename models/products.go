package models

import (
	"errors"
	"strings"
)

// Category is the shop department a product belongs to.
type Category string

const (
	CategoryGloves Category = "gloves"
	CategoryTools  Category = "tools"
	CategorySoil   Category = "soil"
	CategoryPots   Category = "pots"
	CategorySeeds  Category = "seeds"

	// CategoryAll is the filter token matching every product.
	CategoryAll Category = "all"
)

// Categories lists the shop departments in display order.
var Categories = []Category{CategoryGloves, CategoryTools, CategorySoil, CategoryPots, CategorySeeds}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory normalises a filter token. Empty input means CategoryAll.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll
	}
	return Category(s)
}

type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return errors.New("product id must be positive")
	case strings.TrimSpace(p.Name) == "":
		return errors.New("product name is required")
	case !p.Category.Valid():
		return errors.New("unknown product category: " + string(p.Category))
	case p.Price < 0:
		return errors.New("product price must not be negative")
	}
	return nil
}
