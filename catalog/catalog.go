// Package catalog holds the read-only shop products, hero slides and the
// plant list loaded from the static plants file.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"greenbloom/models"
)

var ErrNotFound = errors.New("catalog: not found")

// LoadErrorMessage replaces a plant view when the plants file cannot be read.
const LoadErrorMessage = "Unable to load plants. Please try again later."

var products = []models.Product{
	{ID: 1, Name: "Gardening Gloves", Category: models.CategoryGloves, Price: 12.99,
		Image: "https://picsum.photos/300/200?random=10", Description: "Durable leather gloves for comfortable gardening"},
	{ID: 2, Name: "Watering Can", Category: models.CategoryTools, Price: 24.99,
		Image: "https://picsum.photos/300/200?random=11", Description: "2-gallon metal watering can with rose attachment"},
	{ID: 3, Name: "Gardening Shovel", Category: models.CategoryTools, Price: 18.99,
		Image: "https://picsum.photos/300/200?random=12", Description: "Stainless steel digging shovel with ergonomic handle"},
	{ID: 4, Name: "Organic Fertilizer", Category: models.CategorySoil, Price: 15.99,
		Image: "https://picsum.photos/300/200?random=13", Description: "All-natural plant food for healthy growth"},
	{ID: 5, Name: "Ceramic Plant Pot", Category: models.CategoryPots, Price: 22.99,
		Image: "https://picsum.photos/300/200?random=14", Description: "8-inch decorative ceramic pot with drainage"},
	{ID: 6, Name: "Seed Starter Kit", Category: models.CategorySeeds, Price: 29.99,
		Image: "https://picsum.photos/300/200?random=15", Description: "Complete kit with seeds, soil pods, and trays"},
	{ID: 7, Name: "Pruning Shears", Category: models.CategoryTools, Price: 16.99,
		Image: "https://picsum.photos/300/200?random=16", Description: "Sharp bypass pruners for precise cutting"},
	{ID: 8, Name: "Potting Soil Mix", Category: models.CategorySoil, Price: 8.99,
		Image: "https://picsum.photos/300/200?random=17", Description: "Premium potting mix for indoor and outdoor plants"},
}

var slides = []models.Slide{
	{ID: 1, Image: "https://picsum.photos/1200/500?random=1", Alt: "Greenhouse in bloom", Caption: "Grow something beautiful"},
	{ID: 2, Image: "https://picsum.photos/1200/500?random=2", Alt: "Potted herbs", Caption: "Fresh herbs for every kitchen"},
	{ID: 3, Image: "https://picsum.photos/1200/500?random=3", Alt: "Garden tools", Caption: "Tools that last a lifetime"},
}

// Products returns a copy of the shop catalog.
func Products() []models.Product {
	return append([]models.Product(nil), products...)
}

func Slides() []models.Slide {
	return append([]models.Slide(nil), slides...)
}

func ProductByID(id int) (models.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
}

// Filter returns the products in category, or all of them for CategoryAll.
// The input slice is never modified.
func Filter(items []models.Product, category models.Category) []models.Product {
	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if category == models.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Plants is the plant list read once at startup. Err is kept so views can
// show LoadErrorMessage instead of an empty grid.
type Plants struct {
	items []models.Plant
	err   error
}

// LoadPlants reads the plants file. It never retries; a failure is stored in
// the result and also returned.
func LoadPlants(path string) (*Plants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("read plants file: %w", err)
		return &Plants{err: err}, err
	}
	var items []models.Plant
	if err := json.Unmarshal(data, &items); err != nil {
		err = fmt.Errorf("parse plants file %s: %w", path, err)
		return &Plants{err: err}, err
	}
	for i, p := range items {
		if err := p.Validate(); err != nil {
			err = fmt.Errorf("plant #%d in %s: %w", i, path, err)
			return &Plants{err: err}, err
		}
	}
	return &Plants{items: items}, nil
}

// NewPlants wraps an in-memory list, used by tests and tools.
func NewPlants(items []models.Plant) *Plants {
	return &Plants{items: items}
}

func (p *Plants) Err() error { return p.err }

func (p *Plants) All() []models.Plant {
	return append([]models.Plant(nil), p.items...)
}

// Featured returns the first n plants.
func (p *Plants) Featured(n int) []models.Plant {
	if n > len(p.items) {
		n = len(p.items)
	}
	return append([]models.Plant(nil), p.items[:n]...)
}

// ByName finds a plant by case-insensitive name.
func (p *Plants) ByName(name string) (models.Plant, error) {
	name = strings.TrimSpace(name)
	for _, pl := range p.items {
		if strings.EqualFold(pl.Name, name) {
			return pl, nil
		}
	}
	return models.Plant{}, fmt.Errorf("plant %q: %w", name, ErrNotFound)
}
