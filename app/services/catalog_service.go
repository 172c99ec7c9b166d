package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
)

const (
	msgCategoryNameRequired = "Category name is required"
	msgUploadFailed         = "error upload file"
)

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds a category. Only the empty name is rejected.
func (s *CategoryService) Create(ctx context.Context, name string) (models.CategorySummary, error) {
	if name == "" {
		return models.CategorySummary{}, apperr.New(apperr.InvalidInput, msgCategoryNameRequired)
	}

	c := &models.Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return models.CategorySummary{}, err
	}
	return c.Summary(), nil
}

// List returns every category as {id, name}, ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.CategorySummary, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Summary())
	}
	return out, nil
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
}

// NewProduct is the input of ProductService.Create. File is the uploaded
// banner; Filename is the name the client gave it.
type NewProduct struct {
	Name        string
	Price       string
	Description string
	CategoryID  string
	Filename    string
	File        io.Reader
}

type ProductService struct {
	products   ProductStore
	categories CategoryStore
	disk       storage.Disk
}

func NewProductService(products ProductStore, categories CategoryStore, disk storage.Disk) *ProductService {
	return &ProductService{products: products, categories: categories, disk: disk}
}

// Create stores the banner on the disk and persists the product. The stored
// file is removed again when the insert fails.
func (s *ProductService) Create(ctx context.Context, in NewProduct) (*models.Product, error) {
	if in.File == nil {
		return nil, apperr.New(apperr.InvalidInput, msgUploadFailed)
	}
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	banner := BannerName(in.Filename)
	if err := s.disk.Put(ctx, banner, in.File); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, err, "")
	}

	p := &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Banner:      banner,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if derr := s.disk.Delete(ctx, banner); derr != nil {
			logger.WithCtx(ctx).Warn("orphan banner left on disk", "banner", banner, "error", derr)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return s.products.ListByCategory(ctx, categoryID)
}

// BannerName prefixes the client file name with 32 random hex characters.
func BannerName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "banner"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "-" + base
}
