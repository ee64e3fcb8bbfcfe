package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/thangamari27/zenmart/internal/models"
)

// Service handles business logic related to the product catalog. Product
// input is validated here, at the catalog boundary, so that the rest of the
// system can rely on a well-formed Product shape.
type Service struct {
	repo     ProductRepository
	validate *validator.Validate
}

// NewService creates a new catalog Service.
func NewService(repo ProductRepository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

// List runs one catalog query: the full product list piped through the
// search/filter/sort/paginate engine.
func (s *Service) List(f Filter) (Result, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return Result{}, fmt.Errorf("failed to list products: %w", err)
	}
	return Query(products, f), nil
}

// GetAll retrieves all products.
func (s *Service) GetAll() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetByID retrieves a single product by its ID.
func (s *Service) GetByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Categories derives the category list from the catalog's distinct
// category slugs, keeping first-seen order.
func (s *Service) Categories() ([]models.Category, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	seen := make(map[string]bool)
	categories := make([]models.Category, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, models.Category{
			ID:   p.Category,
			Name: categoryName(p.Category),
			Slug: p.Category,
		})
	}
	return categories, nil
}

// Create validates and creates a new product. A product entering the
// catalog without a rating gets the zero rating rather than a missing one.
func (s *Service) Create(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.Create(product)
}

// Update validates and updates an existing product.
func (s *Service) Update(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.repo.Update(product)
}

// Delete deletes a product by its ID.
func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// categoryName turns a category slug into a display name.
func categoryName(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
